package cart

import "github.com/rogerio-castellano/cart-tracker/internal/models"

// EmptyState returns the canonical empty cart.
func EmptyState() models.CartState {
	return models.CartState{
		Items: []models.CartItem{},
		Total: 0,
	}
}

// CalculateTotal sums price times quantity over the items of s.
func CalculateTotal(s models.CartState) float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the number of units in the cart.
func ItemCount(s models.CartState) int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// Clone returns a copy of s that shares no memory with it.
func Clone(s models.CartState) models.CartState {
	items := make([]models.CartItem, len(s.Items))
	copy(items, s.Items)
	return models.CartState{Items: items, Total: s.Total}
}

func findItem(items []models.CartItem, productID int) (models.CartItem, bool) {
	for _, item := range items {
		if item.ID == productID {
			return item, true
		}
	}
	return models.CartItem{}, false
}
