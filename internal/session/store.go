// Package session owns the live cart of every shopping session and applies
// dispatched actions to it one at a time.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/cart-tracker/internal/cart"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu       sync.Mutex
	state    models.CartState
	lastSeen time.Time
}

// Store keeps one CartState per session id. Actions on the same session are
// applied in the order they acquire the session lock; different sessions do
// not block each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl without activity.
// A ttl of zero disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a session with an empty cart and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &entry{state: cart.EmptyState(), lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

func (s *Store) get(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}

// State returns the current cart of a session.
func (s *Store) State(id string) (models.CartState, error) {
	e, ok := s.get(id)
	if !ok {
		return models.CartState{}, ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	return e.state, nil
}

// Apply replaces the cart of a session with fn(current) while holding the
// session lock, and returns the new cart.
func (s *Store) Apply(id string, fn func(models.CartState) models.CartState) (models.CartState, error) {
	e, ok := s.get(id)
	if !ok {
		return models.CartState{}, ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = fn(e.state)
	e.lastSeen = s.now()
	return e.state, nil
}

// Dispatch applies a single action to the cart of a session.
func (s *Store) Dispatch(id string, a cart.Action) (models.CartState, error) {
	return s.Apply(id, func(current models.CartState) models.CartState {
		return cart.Reduce(current, a)
	})
}

// Delete drops a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes sessions idle for longer than the ttl and returns how many
// were removed. Sessions busy applying an action are skipped; they are not idle.
func (s *Store) Cleanup() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.RLock()
	expired := make(map[string]*entry)
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.lastSeen) > s.ttl {
			expired[id] = e
		}
		e.mu.Unlock()
	}
	s.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range expired {
		if s.sessions[id] != e || !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// StartCleanupLoop runs Cleanup every interval until ctx is done.
func (s *Store) StartCleanupLoop(ctx context.Context, interval time.Duration, onCleanup func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 && onCleanup != nil {
				onCleanup(n)
			}
		}
	}
}
