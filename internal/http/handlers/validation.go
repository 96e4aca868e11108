package handlers

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateAddItem(req AddItemRequest) []ValidationError {
	errs := []ValidationError{}
	if req.ProductID <= 0 {
		errs = append(errs, ValidationError{Field: "ProductID", Description: "Product ID must be greater than zero"})
	}
	return errs
}

// Quantity values are not range checked: zero and negative values are passed
// to the cart unchanged.
func validateQuantityUpdate(req QuantityUpdateRequest) []ValidationError {
	errs := []ValidationError{}
	if req.Quantity == nil {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity is required"})
	}
	return errs
}
