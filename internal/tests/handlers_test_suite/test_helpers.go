package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/cart-tracker/internal/activity"
	"github.com/rogerio-castellano/cart-tracker/internal/auth"
	api "github.com/rogerio-castellano/cart-tracker/internal/http"
	handler "github.com/rogerio-castellano/cart-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/cart-tracker/internal/repo"
	"github.com/rogerio-castellano/cart-tracker/internal/session"
)

var (
	tokens      *auth.TokenIssuer
	historyRepo *repo.InMemoryActionLogRepository
	recorder    *activity.InMemoryRecorder
	service     *session.Service
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo, err := repo.NewInMemoryProductRepository(repo.DefaultCatalog())
	if err != nil {
		panic(fmt.Sprintf("error creating catalog: %v", err))
	}
	handler.SetProductRepo(productRepo)

	historyRepo = repo.NewInMemoryActionLogRepository()
	handler.SetHistoryRepo(historyRepo)

	recorder = activity.NewInMemoryRecorder()
	handler.SetActivityRecorder(recorder)

	service = session.NewService(session.NewStore(time.Hour), historyRepo, recorder, nil)
	handler.SetCartService(service)

	tokens = auth.NewTokenIssuer("test-secret", time.Hour)
	handler.SetTokenIssuer(tokens)
}

func newRouter() http.Handler {
	return api.NewRouter(api.Options{Tokens: tokens})
}

func openSession(r http.Handler) (handler.SessionResponse, error) {
	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		return handler.SessionResponse{}, fmt.Errorf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("session decoding failed: %v", err)
	}
	return resp, nil
}

func mustOpenSession(r http.Handler) string {
	s, err := openSession(r)
	if err != nil {
		panic(err)
	}
	return s.Token
}

func doRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addItem(r http.Handler, token string, productID int) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/cart/items", token, handler.AddItemRequest{ProductID: productID})
}

func updateQuantity(r http.Handler, token string, productID, quantity int) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPut, fmt.Sprintf("/cart/items/%d", productID), token, handler.QuantityUpdateRequest{Quantity: &quantity})
}

func decodeCart(w *httptest.ResponseRecorder) (handler.CartResponse, error) {
	var resp handler.CartResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
