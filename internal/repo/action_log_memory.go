package repo

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

type InMemoryActionLogRepository struct {
	mu      sync.RWMutex
	entries []models.ActionLog
}

func NewInMemoryActionLogRepository() *InMemoryActionLogRepository {
	return &InMemoryActionLogRepository{
		entries: []models.ActionLog{},
	}
}

// Log appends an entry, assigning its ID and, when missing, its timestamp.
func (r *InMemoryActionLogRepository) Log(entry models.ActionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = len(r.entries) + 1
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.entries = append(r.entries, entry)
	return nil
}

// GetBySession returns the entries of a session in dispatch order, filtered by
// date range and paginated, plus the number of entries matching the range.
func (r *InMemoryActionLogRepository) GetBySession(sessionID string, f ActionFilter) ([]models.ActionLog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.ActionLog{}
	for _, e := range r.entries {
		if e.SessionID != sessionID || !inRange(e.CreatedAt, f) {
			continue
		}
		filtered = append(filtered, e)
	}

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.ActionLog{}, len(filtered), nil
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}

	end := clamp(start+pageSize(f), start, len(filtered))

	return filtered[start:end], len(filtered), nil
}

// Clear drops every entry.
func (r *InMemoryActionLogRepository) Clear() {
	r.mu.Lock()
	r.entries = []models.ActionLog{}
	r.mu.Unlock()
}

func inRange(createdAt string, f ActionFilter) bool {
	if f.Since == nil && f.Until == nil {
		return true
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return false
	}
	if f.Since != nil && ts.Before(*f.Since) {
		return false
	}
	if f.Until != nil && ts.After(*f.Until) {
		return false
	}
	return true
}
