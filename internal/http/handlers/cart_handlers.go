package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/cart"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
	repo "github.com/rogerio-castellano/cart-tracker/internal/repo"
)

// GetCartHandler godoc
// @Summary Get the cart of the current session
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Session not found"
// @Router /cart [get]
// @Security BearerAuth
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())
	state, err := cartService.Cart(sessionID)
	if err != nil {
		writeSessionError(w, sessionID, err)
		return
	}
	respond(w, http.StatusOK, toCartResponse(state))
}

// AddItemHandler godoc
// @Summary Add one unit of a catalog product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {object} []ValidationError
// @Failure 404 {string} string "Product not found"
// @Router /cart/items [post]
// @Security BearerAuth
func AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateAddItem(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	product, ok := lookupProduct(w, req.ProductID)
	if !ok {
		return
	}
	dispatch(w, r, cart.AddItem{Product: product})
}

// UpdateQuantityHandler godoc
// @Summary Set the quantity of a cart item
// @Description Any integer is accepted. Items not in the cart are left untouched.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param update body QuantityUpdateRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Router /cart/items/{id} [put]
// @Security BearerAuth
func UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req QuantityUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateQuantityUpdate(req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	dispatch(w, r, cart.UpdateQuantity{ProductID: id, Quantity: *req.Quantity})
}

// RemoveItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid product ID"
// @Router /cart/items/{id} [delete]
// @Security BearerAuth
func RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	dispatch(w, r, cart.RemoveItem{ProductID: id})
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [delete]
// @Security BearerAuth
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	dispatch(w, r, cart.ClearCart{})
}

// DispatchActionHandler godoc
// @Summary Dispatch a raw cart action
// @Description Accepts {"type": "...", "payload": ...}. ADD_ITEM payload ids are resolved
// @Description against the catalog. Unknown types leave the cart unchanged.
// @Tags cart
// @Accept json
// @Produce json
// @Param action body cart.Envelope true "Action envelope"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Router /cart/actions [post]
// @Security BearerAuth
func DispatchActionHandler(w http.ResponseWriter, r *http.Request) {
	var env cart.Envelope
	if err := readJSON(w, r, &env); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	action, err := env.Action()
	if err != nil {
		if errors.Is(err, cart.ErrUnknownAction) {
			sessionID := SessionIDFromContext(r.Context())
			logger.Warn("ignoring unknown action", zap.String("session_id", sessionID), zap.String("action", string(env.Type)))
			GetCartHandler(w, r)
			return
		}
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	// Prices always come from the catalog, never from the client.
	if add, ok := action.(cart.AddItem); ok {
		product, found := lookupProduct(w, add.Product.ID)
		if !found {
			return
		}
		action = cart.AddItem{Product: product}
	}

	dispatch(w, r, action)
}

func lookupProduct(w http.ResponseWriter, id int) (p models.Product, ok bool) {
	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return p, false
		}
		logger.Error("could not fetch product", zap.Int("product_id", id), zap.Error(err))
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return p, false
	}
	return product, true
}

func dispatch(w http.ResponseWriter, r *http.Request, a cart.Action) {
	sessionID := SessionIDFromContext(r.Context())
	state, err := cartService.Dispatch(r.Context(), sessionID, a)
	if err != nil {
		writeSessionError(w, sessionID, err)
		return
	}
	respond(w, http.StatusOK, toCartResponse(state))
}
