package http

import (
	"net/http"

	"github.com/rogerio-castellano/cart-tracker/internal/auth"
	"github.com/rogerio-castellano/cart-tracker/internal/http/handlers"
)

// SessionAuth requires a valid session token and stores the session id in the
// request context.
func SessionAuth(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			sessionID, err := tokens.ParseToken(tokenStr)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := handlers.ContextWithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
