package models

// CartItem is a catalog product together with the quantity held in a cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// CartState is the full state of one cart. Items keep insertion order.
type CartState struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
