package activity

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NextRun returns the next daily summary time (23:59 local) after now.
func NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// StartDailySummary drains rec every day at 23:59 and logs the digest until
// ctx is done.
func StartDailySummary(ctx context.Context, rec Recorder, logger *zap.Logger) {
	for {
		timer := time.NewTimer(time.Until(NextRun(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			SendDailySummary(ctx, rec, logger)
		}
	}
}

// SendDailySummary drains rec and logs the digest. Empty periods are skipped.
func SendDailySummary(ctx context.Context, rec Recorder, logger *zap.Logger) {
	s, err := rec.Drain(ctx)
	if err != nil {
		logger.Error("failed to drain cart activity", zap.Error(err))
		return
	}
	if s.Total == 0 {
		return
	}
	logger.Info("daily cart activity",
		zap.Int("actions", s.Total),
		zap.Int("sessions", len(s.BySession)),
		zap.Any("by_kind", s.ByKind),
	)
}
