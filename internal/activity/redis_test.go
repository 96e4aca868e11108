package activity

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/cart-tracker/internal/redissvc"
)

func newTestRedisRecorder(t *testing.T) *RedisRecorder {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb, err := redissvc.Connect(ctx, redissvc.Options{Addr: addr})
	require.NoError(t, err)

	rec := NewRedisRecorder(rdb)
	rec.key = "cart:activity:test:" + uuid.NewString()
	t.Cleanup(func() {
		rdb.Del(ctx, rec.key)
		rdb.Close()
	})
	return rec
}

func TestRedisRecorder(t *testing.T) {
	rec := newTestRedisRecorder(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, rec.Record(ctx, Event{SessionID: "a", Kind: "ADD_ITEM", Time: now}))
	require.NoError(t, rec.Record(ctx, Event{SessionID: "a", Kind: "REMOVE_ITEM", Time: now}))
	require.NoError(t, rec.Record(ctx, Event{SessionID: "b", Kind: "ADD_ITEM", Time: now}))

	s, err := rec.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[string]int{"ADD_ITEM": 2, "REMOVE_ITEM": 1}, s.ByKind)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, s.BySession)

	drained, err := rec.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, drained)

	after, err := rec.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, after.Total)
}

func TestRedisRecorder_SkipsMalformedEntries(t *testing.T) {
	rec := newTestRedisRecorder(t)
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, Event{SessionID: "a", Kind: "CLEAR_CART", Time: time.Now()}))
	require.NoError(t, rec.rdb.RPush(ctx, rec.key, "not json").Err())

	s, err := rec.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, map[string]int{"CLEAR_CART": 1}, s.ByKind)
}

func TestDecodeEvents(t *testing.T) {
	events := decodeEvents([]string{
		`{"session_id":"a","kind":"ADD_ITEM","time":"2025-07-03T10:00:00Z"}`,
		`{broken`,
		`{"session_id":"b","kind":"CLEAR_CART","time":"2025-07-03T11:00:00Z"}`,
	})
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].SessionID)
	assert.Equal(t, "CLEAR_CART", events[1].Kind)
}
