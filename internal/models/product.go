package models

// Product represents an item in the store catalog. The catalog is read-only
// from the API's perspective; products are only created when seeding a backend.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required"`
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency" validate:"required,len=3"`
	CategoryID  string   `json:"categoryId" validate:"required"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
	InStock     bool     `json:"inStock"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Category groups products for catalog browsing.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(64)" validate:"required"`
	Name string `json:"name" validate:"required"`
}
