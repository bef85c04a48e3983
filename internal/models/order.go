package models

import "time"

// OrderItem is a single line of an order. UnitPrice is a snapshot of the
// catalog price at order time, independent of later catalog changes.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order represents a placed customer order. Orders are created once by the
// server and never mutated afterwards; they live for the lifetime of the
// order store.
type Order struct {
	ID            string      `json:"id"`
	CustomerEmail string      `json:"customerEmail"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OrderItemRequest is the identifier+quantity pair a client submits for one
// order line.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the body of an order submission after shape validation.
type OrderRequest struct {
	CustomerEmail string             `json:"customerEmail,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}
