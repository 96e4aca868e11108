package models

// ActionLog is one dispatched cart action as recorded in the session history.
type ActionLog struct {
	ID        int     `json:"id"`
	SessionID string  `json:"session_id"`
	Kind      string  `json:"kind"`
	ProductID int     `json:"product_id,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}
