package activity

import (
	"context"
	"sync"
)

type InMemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

func (r *InMemoryRecorder) Record(_ context.Context, e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

func (r *InMemoryRecorder) Summary(_ context.Context) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return summarize(r.events), nil
}

func (r *InMemoryRecorder) Drain(_ context.Context) (Summary, error) {
	r.mu.Lock()
	events := r.events
	r.events = nil
	r.mu.Unlock()
	return summarize(events), nil
}
