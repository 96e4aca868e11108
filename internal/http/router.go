package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rogerio-castellano/cart-tracker/internal/auth"
	"github.com/rogerio-castellano/cart-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/cart-tracker/internal/http/rate_limiter"
)

type Options struct {
	Tokens *auth.TokenIssuer
	// Limiter is optional; nil disables rate limiting.
	Limiter *rl.Limiter
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.Get("/healthz", handlers.HealthHandler)
	r.Post("/sessions", handlers.CreateSessionHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/metrics/activity", handlers.GetActivityMetricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(SessionAuth(opts.Tokens))

		r.Delete("/sessions", handlers.CloseSessionHandler)

		r.Get("/cart", handlers.GetCartHandler)
		r.Delete("/cart", handlers.ClearCartHandler)
		r.Post("/cart/items", handlers.AddItemHandler)
		r.Put("/cart/items/{id}", handlers.UpdateQuantityHandler)
		r.Delete("/cart/items/{id}", handlers.RemoveItemHandler)
		r.Post("/cart/actions", handlers.DispatchActionHandler)

		r.Get("/cart/history", handlers.GetHistoryHandler)
		r.Get("/cart/history/export", handlers.ExportHistoryHandler)
	})

	return r
}
