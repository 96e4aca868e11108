package handlers

type ProductResponse struct {
	Id    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartItemResponse struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

type AddItemRequest struct {
	ProductID int `json:"product_id"`
}

type QuantityUpdateRequest struct {
	Quantity *int `json:"quantity"` // any integer, including zero or negative
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ActionLogResponse struct {
	ID        int     `json:"id"`
	Kind      string  `json:"kind"`
	ProductID int     `json:"product_id,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

type HistorySearchResult struct {
	Data []ActionLogResponse `json:"data"`
	Meta Meta                `json:"meta,omitempty"`
}
