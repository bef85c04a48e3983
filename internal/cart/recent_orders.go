package cart

import (
	"context"
	"encoding/json"
	"log"

	"storefront/internal/models"
	"storefront/pkg/session"
)

// DefaultRecentOrdersKey is the session key recently placed orders are
// stored under.
const DefaultRecentOrdersKey = "storefront_recent_orders"

// DefaultRecentOrdersLimit caps how many orders the cache remembers.
const DefaultRecentOrdersLimit = 20

// RecentOrders remembers orders placed during the session, most recent
// first, so the client can show them without asking the server. Persistence
// is best-effort, same as the cart.
type RecentOrders struct {
	store session.Store
	key   string
	limit int
}

// NewRecentOrders creates a RecentOrders cache with the default key and limit.
func NewRecentOrders(store session.Store) *RecentOrders {
	return &RecentOrders{
		store: store,
		key:   DefaultRecentOrdersKey,
		limit: DefaultRecentOrdersLimit,
	}
}

// List loads the cached orders, most recent first. A corrupt payload yields
// an empty list.
func (r *RecentOrders) List(ctx context.Context) []models.Order {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil || len(raw) == 0 {
		return []models.Order{}
	}

	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return []models.Order{}
	}
	return orders
}

// Save prepends an order to the cache, dropping the oldest entries beyond
// the limit.
func (r *RecentOrders) Save(ctx context.Context, order models.Order) {
	orders := append([]models.Order{order}, r.List(ctx)...)
	if len(orders) > r.limit {
		orders = orders[:r.limit]
	}

	raw, err := json.Marshal(orders)
	if err != nil {
		log.Printf("Failed to serialize recent orders: %v", err)
		return
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		log.Printf("Failed to persist recent orders: %v", err)
	}
}

// Clear forgets all cached orders.
func (r *RecentOrders) Clear(ctx context.Context) {
	if err := r.store.Delete(ctx, r.key); err != nil {
		log.Printf("Failed to clear recent orders: %v", err)
	}
}
