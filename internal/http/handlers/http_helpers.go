package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/cart"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
	"github.com/rogerio-castellano/cart-tracker/internal/session"
)

const maxBodyBytes = 1048576 // one megabyte

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseTimePtr parses an RFC3339 query value. Query decoding turns the "+"
// of a zone offset into a space, so it is put back before parsing.
// Example: 2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00
func parseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Id: p.ID, Name: p.Name, Price: p.Price}
}

func toCartResponse(s models.CartState) CartResponse {
	resp := CartResponse{
		Items:     make([]CartItemResponse, len(s.Items)),
		Total:     s.Total,
		ItemCount: cart.ItemCount(s),
	}
	for i, item := range s.Items {
		resp.Items[i] = CartItemResponse{
			Id:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Price * float64(item.Quantity),
		}
	}
	return resp
}

// writeSessionError maps errors of the cart service to responses.
func writeSessionError(w http.ResponseWriter, sessionID string, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	logger.Error("cart service failed", zap.String("session_id", sessionID), zap.Error(err))
	http.Error(w, "could not update cart", http.StatusInternalServerError)
}
