package repositories

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
)

// SeedCatalog loads the default catalog into a product repository. Every
// record is checked against its validate tags before insert so a bad seed
// entry fails loudly at startup instead of surfacing as a broken product.
func SeedCatalog(repo ProductRepository) error {
	// A persistent backend may already hold the catalog.
	existing, err := repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to inspect catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	validate := validator.New()

	categories := []models.Category{
		{ID: "audio", Name: "Audio"},
		{ID: "computing", Name: "Computing"},
		{ID: "accessories", Name: "Accessories"},
	}

	products := []models.Product{
		{
			ID:          "p1",
			Name:        "Wireless Headphones",
			Description: "Over-ear wireless headphones with noise cancelling",
			Price:       129.99,
			Currency:    "USD",
			CategoryID:  "audio",
			Tags:        []string{"wireless", "bluetooth"},
			InStock:     true,
			ImageURL:    "https://images.example.com/p1.jpg",
		},
		{
			ID:          "p2",
			Name:        "Portable Speaker",
			Description: "Compact speaker with 12h battery life",
			Price:       49.5,
			Currency:    "USD",
			CategoryID:  "audio",
			Tags:        []string{"portable", "bluetooth"},
			InStock:     true,
		},
		{
			ID:          "p3",
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless mechanical keyboard, brown switches",
			Price:       89.0,
			Currency:    "USD",
			CategoryID:  "computing",
			Tags:        []string{"keyboard", "mechanical"},
			InStock:     true,
			ImageURL:    "https://images.example.com/p3.jpg",
		},
		{
			ID:          "p4",
			Name:        "Ergonomic Mouse",
			Description: "Vertical wireless mouse",
			Price:       39.99,
			Currency:    "USD",
			CategoryID:  "computing",
			Tags:        []string{"mouse", "wireless"},
			InStock:     false,
		},
		{
			ID:          "p5",
			Name:        "Laptop Stand",
			Description: "Aluminium adjustable laptop stand",
			Price:       27.25,
			Currency:    "USD",
			CategoryID:  "accessories",
			Tags:        []string{"desk"},
			InStock:     true,
		},
	}

	for i := range categories {
		if err := validate.Struct(&categories[i]); err != nil {
			return fmt.Errorf("invalid seed category %s: %w", categories[i].ID, err)
		}
		if err := repo.CreateCategory(&categories[i]); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", categories[i].ID, err)
		}
	}

	for i := range products {
		if err := validate.Struct(&products[i]); err != nil {
			return fmt.Errorf("invalid seed product %s: %w", products[i].ID, err)
		}
		if err := repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}

	return nil
}
