package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidCatalog is returned when a catalog definition breaks its rules.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
