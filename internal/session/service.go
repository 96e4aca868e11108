package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/activity"
	"github.com/rogerio-castellano/cart-tracker/internal/cart"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
	"github.com/rogerio-castellano/cart-tracker/internal/repo"
)

// Service dispatches actions to session carts and records what happened.
// Recording failures are logged; they never change the cart.
type Service struct {
	store    *Store
	history  repo.ActionLogRepository
	activity activity.Recorder
	logger   *zap.Logger
}

func NewService(store *Store, history repo.ActionLogRepository, rec activity.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		history:  history,
		activity: rec,
		logger:   logger,
	}
}

func (s *Service) Open() string {
	id := s.store.Create()
	s.logger.Info("session opened", zap.String("session_id", id))
	return id
}

func (s *Service) Cart(id string) (models.CartState, error) {
	return s.store.State(id)
}

func (s *Service) Close(id string) bool {
	return s.store.Delete(id)
}

// OpenSessions reports how many carts are currently live.
func (s *Service) OpenSessions() int {
	return s.store.Len()
}

// Dispatch applies a to the cart of session id and returns the new cart.
func (s *Service) Dispatch(ctx context.Context, id string, a cart.Action) (models.CartState, error) {
	var kind string
	if a != nil {
		kind = string(a.Kind())
	}

	next, err := s.store.Apply(id, func(current models.CartState) models.CartState {
		next := cart.Reduce(current, a)
		if a != nil {
			s.record(ctx, id, a, next)
		}
		return next
	})
	if err != nil {
		return models.CartState{}, err
	}

	s.logger.Debug("action dispatched",
		zap.String("session_id", id),
		zap.String("action", kind),
		zap.Int("product_id", cart.ProductIDOf(a)),
		zap.Float64("total", next.Total),
	)
	return next, nil
}

func (s *Service) record(ctx context.Context, id string, a cart.Action, next models.CartState) {
	now := time.Now().UTC()

	if s.history != nil {
		entry := models.ActionLog{
			SessionID: id,
			Kind:      string(a.Kind()),
			ProductID: cart.ProductIDOf(a),
			Quantity:  quantityOf(a),
			Total:     next.Total,
			CreatedAt: now.Format(time.RFC3339),
		}
		if err := s.history.Log(entry); err != nil {
			s.logger.Warn("failed to log cart action", zap.String("session_id", id), zap.Error(err))
		}
	}

	if s.activity != nil {
		ev := activity.Event{SessionID: id, Kind: string(a.Kind()), Time: now}
		if err := s.activity.Record(ctx, ev); err != nil {
			s.logger.Warn("failed to record cart activity", zap.String("session_id", id), zap.Error(err))
		}
	}
}

func quantityOf(a cart.Action) int {
	switch a := a.(type) {
	case cart.AddItem:
		return 1
	case cart.UpdateQuantity:
		return a.Quantity
	default:
		return 0
	}
}
