package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rogerio-castellano/cart-tracker/internal/activity"
)

func TestInMemoryRecorder(t *testing.T) {
	ctx := context.Background()
	rec := activity.NewInMemoryRecorder()
	now := time.Now()

	require.NoError(t, rec.Record(ctx, activity.Event{SessionID: "a", Kind: "ADD_ITEM", Time: now}))
	require.NoError(t, rec.Record(ctx, activity.Event{SessionID: "a", Kind: "ADD_ITEM", Time: now}))
	require.NoError(t, rec.Record(ctx, activity.Event{SessionID: "b", Kind: "CLEAR_CART", Time: now}))

	s, err := rec.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[string]int{"ADD_ITEM": 2, "CLEAR_CART": 1}, s.ByKind)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, s.BySession)

	drained, err := rec.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, drained)

	after, err := rec.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, after.Total)
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2025, 7, 3, 10, 0, 0, 0, loc), time.Date(2025, 7, 3, 23, 59, 0, 0, loc)},
		{time.Date(2025, 7, 3, 23, 59, 0, 0, loc), time.Date(2025, 7, 4, 23, 59, 0, 0, loc)},
		{time.Date(2025, 12, 31, 23, 59, 30, 0, loc), time.Date(2026, 1, 1, 23, 59, 0, 0, loc)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, activity.NextRun(tt.now))
	}
}

func TestSendDailySummary(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	rec := activity.NewInMemoryRecorder()

	activity.SendDailySummary(ctx, rec, logger)
	assert.Zero(t, logs.Len())

	require.NoError(t, rec.Record(ctx, activity.Event{SessionID: "a", Kind: "REMOVE_ITEM", Time: time.Now()}))
	activity.SendDailySummary(ctx, rec, logger)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "daily cart activity", entry.Message)
	assert.Equal(t, int64(1), entry.ContextMap()["actions"])

	s, _ := rec.Summary(ctx)
	assert.Zero(t, s.Total)
}
