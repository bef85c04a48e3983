// Package cart implements the client-held shopping cart and the
// recent-orders cache. Both persist to a session.Store and are best-effort:
// storage failures degrade to "nothing persisted" rather than surfacing to
// the caller, and corrupt stored data degrades to empty state.
package cart

import (
	"context"
	"encoding/json"
	"log"

	"storefront/internal/models"
	"storefront/pkg/session"
)

// DefaultCartKey is the session key cart contents are stored under.
const DefaultCartKey = "storefront_cart"

// Cart is a mapping from product id to quantity, kept as an ordered list of
// entries. Every mutation re-serializes the whole cart to the session store.
type Cart struct {
	store session.Store
	key   string
}

// New creates a Cart persisting to store under DefaultCartKey.
func New(store session.Store) *Cart {
	return NewWithKey(store, DefaultCartKey)
}

// NewWithKey creates a Cart persisting to store under the given key.
func NewWithKey(store session.Store, key string) *Cart {
	return &Cart{
		store: store,
		key:   key,
	}
}

// Items loads the cart from the session store. Entries failing the shape
// check (empty id, non-positive quantity) are discarded; a corrupt payload
// yields an empty cart.
func (c *Cart) Items(ctx context.Context) []models.CartItem {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil || len(raw) == 0 {
		return []models.CartItem{}
	}

	var parsed []models.CartItem
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []models.CartItem{}
	}

	items := make([]models.CartItem, 0, len(parsed))
	for _, item := range parsed {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Add increments the quantity of an existing entry or inserts a new one.
func (c *Cart) Add(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	items := c.Items(ctx)
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductID: productID, Quantity: quantity})
	}
	c.save(ctx, items)
}

// SetQuantity overwrites the quantity of an entry. A quantity of zero or
// less removes the entry entirely.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) {
	items := c.Items(ctx)
	if quantity <= 0 {
		c.save(ctx, removeItem(items, productID))
		return
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	c.save(ctx, items)
}

// Remove deletes an entry.
func (c *Cart) Remove(ctx context.Context, productID string) {
	c.save(ctx, removeItem(c.Items(ctx), productID))
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) {
	c.save(ctx, []models.CartItem{})
}

func (c *Cart) save(ctx context.Context, items []models.CartItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		log.Printf("Failed to serialize cart: %v", err)
		return
	}
	// Session storage is best-effort; a failed write degrades to
	// "nothing persisted".
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		log.Printf("Failed to persist cart: %v", err)
	}
}

func removeItem(items []models.CartItem, productID string) []models.CartItem {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
