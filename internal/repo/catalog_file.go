package repo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// LoadCatalogFile reads a YAML catalog of the form:
//
//	products:
//	  - id: 1
//	    name: Product 1
//	    price: 10
func LoadCatalogFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) ([]models.Product, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := ValidateCatalog(f.Products); err != nil {
		return nil, err
	}
	return f.Products, nil
}

// ValidateCatalog checks that ids are unique and positive, names are set and
// prices are not negative.
func ValidateCatalog(products []models.Product) error {
	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return fmt.Errorf("%w: product id %d must be positive", ErrInvalidCatalog, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicated product id %d", ErrInvalidCatalog, p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: product %d has no name", ErrInvalidCatalog, p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("%w: product %d has negative price", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
