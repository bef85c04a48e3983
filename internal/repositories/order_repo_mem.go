package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"
)

// MemoryOrderRepository is the in-memory implementation of OrderRepository.
// A slice keeps submission order for listing; a map indexes by id for O(1)
// lookup. The mutex serializes concurrent appends so two simultaneous
// submissions never interleave or lose a write.
type MemoryOrderRepository struct {
	orders []models.Order
	index  map[string]int
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all orders, oldest first.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, len(r.orders))
	copy(orders, r.orders)
	return orders, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	order := r.orders[i]
	return &order, nil
}

// Create appends a new order.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[order.ID]; ok {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}
	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}
