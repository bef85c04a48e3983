package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	// DefaultCustomerEmail is stored when an order is submitted without one.
	DefaultCustomerEmail = "guest@example.com"

	minQuantity = 1
	maxQuantity = 99
)

// EventPublisher publishes order lifecycle events to a message broker.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, body []byte) error
}

// OrderService handles business logic related to orders: server-side
// pricing, order creation, and lookup.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case order events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		events:      events,
	}
}

// GetAllOrders retrieves all orders, oldest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID. When email is non-empty
// it must case-insensitively match the order's stored customer email;
// otherwise the order is reported as not found, indistinguishable from a
// truly missing id.
func (s *OrderService) GetOrderByID(id, email string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if email != "" && !strings.EqualFold(order.CustomerEmail, email) {
		return nil, fmt.Errorf("order with ID %s: %w", id, repositories.ErrOrderNotFound)
	}
	return order, nil
}

// CreateOrder prices and stores a new order. Prices come from the catalog,
// never from the client. Items referencing unknown product ids are silently
// dropped — lenient by policy, not an oversight. Quantities are clamped to
// [1, 99] and the total is rounded to two decimal places.
func (s *OrderService) CreateOrder(req models.OrderRequest) (*models.Order, error) {
	customerEmail := req.CustomerEmail
	if customerEmail == "" {
		customerEmail = DefaultCustomerEmail
	}

	var totalAmount float64
	orderItems := []models.OrderItem{}

	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			continue
		}

		quantity := clampQuantity(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
		totalAmount += product.Price * float64(quantity)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:            generateOrderID(),
		CustomerEmail: customerEmail,
		Items:         orderItems,
		TotalAmount:   math.Round(totalAmount*100) / 100,
		Status:        "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits an order.created event. Publish failures are
// logged and never fail the request.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"orderId":       order.ID,
		"customerEmail": order.CustomerEmail,
		"status":        order.Status,
		"totalAmount":   order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID, err)
		return
	}

	if err := s.events.PublishOrderEvent("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

func clampQuantity(quantity int) int {
	if quantity < minQuantity {
		return minQuantity
	}
	if quantity > maxQuantity {
		return maxQuantity
	}
	return quantity
}

// generateOrderID returns a prefixed fixed-length random token,
// e.g. "ord_a1b2c3d4e5f6".
func generateOrderID() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ord_" + token[:12]
}
