package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CatalogService handles read access to the product catalog.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID. Repeated calls for
// the same id return identical data; there are no side effects on the store.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetCategories retrieves all categories.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.repo.Categories()
}
