package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// CreateSessionHandler godoc
// @Summary Open a cart session
// @Description Creates an empty cart and returns a bearer token bound to it
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 500 {string} string "Internal error"
// @Router /sessions [post]
func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := cartService.Open()

	token, err := tokens.GenerateToken(sessionID)
	if err != nil {
		cartService.Close(sessionID)
		logger.Error("could not generate token", zap.String("session_id", sessionID), zap.Error(err))
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusCreated, SessionResponse{SessionID: sessionID, Token: token})
}

// CloseSessionHandler godoc
// @Summary Close the current cart session
// @Tags sessions
// @Success 204
// @Failure 404 {string} string "Session not found"
// @Router /sessions [delete]
// @Security BearerAuth
func CloseSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())
	if !cartService.Close(sessionID) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	logger.Info("session closed", zap.String("session_id", sessionID))
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
