// Package cart holds the cart state transitions. Reduce is pure: it never
// mutates its input and every call with the same arguments returns the same
// state.
package cart

import "github.com/rogerio-castellano/cart-tracker/internal/models"

// Reduce computes the state that follows state once action is applied.
// It has no failure path: references to products that are not in the cart
// leave the state unchanged, and a nil action returns state as is.
func Reduce(state models.CartState, action Action) models.CartState {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a.Product)
	case RemoveItem:
		return removeItem(state, a.ProductID)
	case UpdateQuantity:
		return updateQuantity(state, a.ProductID, a.Quantity)
	case ClearCart:
		return EmptyState()
	default:
		return state
	}
}

// ReduceAll folds actions over state in order.
func ReduceAll(state models.CartState, actions ...Action) models.CartState {
	for _, a := range actions {
		state = Reduce(state, a)
	}
	return state
}

func addItem(state models.CartState, p models.Product) models.CartState {
	if _, ok := findItem(state.Items, p.ID); ok {
		items := make([]models.CartItem, len(state.Items))
		for i, item := range state.Items {
			if item.ID == p.ID {
				item.Quantity++
			}
			items[i] = item
		}
		return models.CartState{Items: items, Total: state.Total + p.Price}
	}

	items := make([]models.CartItem, len(state.Items), len(state.Items)+1)
	copy(items, state.Items)
	items = append(items, models.CartItem{Product: p, Quantity: 1})
	return models.CartState{Items: items, Total: state.Total + p.Price}
}

func removeItem(state models.CartState, productID int) models.CartState {
	removed, ok := findItem(state.Items, productID)

	items := make([]models.CartItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID != productID {
			items = append(items, item)
		}
	}

	total := state.Total
	if ok {
		total -= removed.Price * float64(removed.Quantity)
	}
	return models.CartState{Items: items, Total: total}
}

func updateQuantity(state models.CartState, productID, quantity int) models.CartState {
	current, ok := findItem(state.Items, productID)
	if !ok {
		return state
	}

	items := make([]models.CartItem, len(state.Items))
	for i, item := range state.Items {
		if item.ID == productID {
			item.Quantity = quantity
		}
		items[i] = item
	}

	diff := quantity - current.Quantity
	return models.CartState{Items: items, Total: state.Total + current.Price*float64(diff)}
}
