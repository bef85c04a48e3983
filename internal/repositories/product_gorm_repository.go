package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository,
// usable with both the SQLite and PostgreSQL drivers. Behavior observable
// through the API is identical to the in-memory repository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository migrates the catalog tables and returns a new
// instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) (*GORMProductRepository, error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return &GORMProductRepository{db: db}, nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Categories retrieves all categories from the database.
func (r *GORMProductRepository) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateCategory creates a new category in the database.
func (r *GORMProductRepository) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
