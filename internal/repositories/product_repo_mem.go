package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. Listing preserves insertion order.
type MemoryProductRepository struct {
	products   []models.Product
	index      map[string]int
	categories []models.Category
	mu         sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// Categories returns all categories in insertion order.
func (r *MemoryProductRepository) Categories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]models.Category, len(r.categories))
	copy(categories, r.categories)
	return categories, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[product.ID]; ok {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// CreateCategory adds a new category.
func (r *MemoryProductRepository) CreateCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = append(r.categories, *category)
	return nil
}
