package repo

import "github.com/rogerio-castellano/cart-tracker/internal/models"

// ProductRepository gives read access to the fixed product catalog.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
}

// DefaultCatalog returns the built-in catalog used when no catalog file is configured.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Product 1", Price: 10},
		{ID: 2, Name: "Product 2", Price: 20},
		{ID: 3, Name: "Product 3", Price: 30},
	}
}
