package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisRecorder struct {
	rdb *redis.Client
	key string
}

func NewRedisRecorder(rdb *redis.Client) *RedisRecorder {
	return &RedisRecorder{rdb: rdb, key: DailyKey}
}

func (r *RedisRecorder) Record(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	return r.rdb.RPush(ctx, r.key, data).Err()
}

func (r *RedisRecorder) Summary(ctx context.Context) (Summary, error) {
	entries, err := r.rdb.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return Summary{}, fmt.Errorf("read activity: %w", err)
	}
	return summarize(decodeEvents(entries)), nil
}

// Drain reads and deletes the list in one transaction so no event is counted twice.
func (r *RedisRecorder) Drain(ctx context.Context) (Summary, error) {
	var lrange *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, r.key, 0, -1)
		pipe.Del(ctx, r.key)
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("drain activity: %w", err)
	}
	return summarize(decodeEvents(lrange.Val())), nil
}

func decodeEvents(entries []string) []Event {
	events := make([]Event, 0, len(entries))
	for _, item := range entries {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			events = append(events, e)
		}
	}
	return events
}
