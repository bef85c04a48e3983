package repositories

import (
	"errors"

	"storefront/internal/models"
)

// ErrProductNotFound is returned when a product id does not resolve.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for catalog data access. The
// catalog is read-only at request time; Create and CreateCategory exist for
// seeding a backend at startup.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Categories() ([]models.Category, error)
	Create(product *models.Product) error
	CreateCategory(category *models.Category) error
}
