package repo

import (
	"time"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

// ActionLogRepository stores the history of actions dispatched to cart sessions.
type ActionLogRepository interface {
	Log(entry models.ActionLog) error
	GetBySession(sessionID string, f ActionFilter) ([]models.ActionLog, int, error)
}

// ActionFilter narrows a history query. Nil fields are not applied.
type ActionFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// MaxLimit is the page size used when a filter has no limit, and the largest
// page any repository returns.
const MaxLimit = 100

func pageSize(f ActionFilter) int {
	if f.Limit != nil && *f.Limit > 0 {
		return min(*f.Limit, MaxLimit)
	}
	return MaxLimit
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
