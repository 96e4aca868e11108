// Package activity keeps a running digest of dispatched cart actions and
// reports it once a day.
package activity

import (
	"context"
	"time"
)

// DailyKey is the Redis list holding the events of the current digest period.
const DailyKey = "cart:activity:daily"

// Event is one dispatched action.
type Event struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Time      time.Time `json:"time"`
}

// Summary aggregates events by action kind and by session.
type Summary struct {
	Total     int            `json:"total"`
	ByKind    map[string]int `json:"by_kind"`
	BySession map[string]int `json:"by_session"`
}

// Recorder stores events and summarizes them. Drain returns the summary and
// starts a new period.
type Recorder interface {
	Record(ctx context.Context, e Event) error
	Summary(ctx context.Context) (Summary, error)
	Drain(ctx context.Context) (Summary, error)
}

func summarize(events []Event) Summary {
	s := Summary{
		ByKind:    map[string]int{},
		BySession: map[string]int{},
	}
	for _, e := range events {
		s.Total++
		s.ByKind[e.Kind]++
		s.BySession[e.SessionID]++
	}
	return s
}
