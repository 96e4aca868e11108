package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/activity"
	"github.com/rogerio-castellano/cart-tracker/internal/auth"
	repo "github.com/rogerio-castellano/cart-tracker/internal/repo"
	"github.com/rogerio-castellano/cart-tracker/internal/session"
)

var (
	productRepo repo.ProductRepository
	historyRepo repo.ActionLogRepository
	cartService *session.Service
	recorder    activity.Recorder
	tokens      *auth.TokenIssuer

	logger = zap.NewNop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetHistoryRepo(r repo.ActionLogRepository) {
	historyRepo = r
}

func SetCartService(s *session.Service) {
	cartService = s
}

func SetActivityRecorder(r activity.Recorder) {
	recorder = r
}

func SetTokenIssuer(t *auth.TokenIssuer) {
	tokens = t
}

func SetLogger(l *zap.Logger) {
	logger = l
}

type contextKey string

const sessionIDKey = contextKey("session_id")

// ContextWithSessionID returns a copy of ctx carrying the session id.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the session id stored by the auth middleware.
func SessionIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(sessionIDKey).(string); ok {
		return val
	}
	return ""
}
