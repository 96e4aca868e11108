package repo

import "github.com/rogerio-castellano/cart-tracker/internal/models"

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
}

// NewInMemoryProductRepository creates a repository serving the given products.
// The slice is copied so later changes by the caller do not leak in.
func NewInMemoryProductRepository(products []models.Product) (*InMemoryProductRepository, error) {
	if err := ValidateCatalog(products); err != nil {
		return nil, err
	}
	cp := make([]models.Product, len(products))
	copy(cp, products)
	return &InMemoryProductRepository{products: cp}, nil
}

// GetAll retrieves all products in catalog order.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
