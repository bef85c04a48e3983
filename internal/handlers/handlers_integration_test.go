package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// setupApp sets up a Fiber app for testing with an in-memory SQLite catalog
// and an in-memory order store.
func setupApp() (*fiber.App, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	productRepo, err := repositories.NewGORMProductRepository(db)
	if err != nil {
		return nil, err
	}
	if err := repositories.SeedCatalog(productRepo); err != nil {
		return nil, err
	}
	orderRepo := repositories.NewMemoryOrderRepository()

	catalogService := services.NewCatalogService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil)

	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	return app, nil
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestGetProducts(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 5)
}

func TestGetProductByID(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products/p1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product models.Product
	assert.NoError(t, json.Unmarshal(raw, &product))
	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, 129.99, product.Price)
	assert.Equal(t, "audio", product.CategoryID)

	// Repeated GETs return identical data; lookups have no side effects.
	resp2, raw2 := doJSON(t, app, http.MethodGet, "/api/products/p1", nil)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.JSONEq(t, string(raw), string(raw2))
}

func TestGetProductByID_NotFound(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Product not found"}`, string(raw))
}

func TestGetCategories(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []models.Category
	assert.NoError(t, json.Unmarshal(raw, &categories))
	assert.Len(t, categories, 3)
}

func TestCreateOrder(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerEmail": "jo@example.com",
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 2},
			{"productId": "p3", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	assert.NoError(t, json.Unmarshal(raw, &order))
	assert.Regexp(t, `^ord_[0-9a-f]{12}$`, order.ID)
	assert.Equal(t, "jo@example.com", order.CustomerEmail)
	assert.Equal(t, "pending", order.Status)
	assert.Len(t, order.Items, 2)
	// 129.99*2 + 89.00*1
	assert.Equal(t, 348.98, order.TotalAmount)
}

func TestCreateOrder_IgnoresClientSuppliedPrice(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	// A client-supplied unitPrice is not part of the contract and must not
	// influence server-side pricing.
	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 1, "unitPrice": 0.01},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	assert.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, 129.99, order.Items[0].UnitPrice)
	assert.Equal(t, 129.99, order.TotalAmount)
}

func TestCreateOrder_ClampsQuantity(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "p5", "quantity": 150},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	assert.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, 99, order.Items[0].Quantity)
	// 27.25 * 99
	assert.Equal(t, 2697.75, order.TotalAmount)
}

func TestCreateOrder_DropsUnknownProduct(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "ghost", "quantity": 1},
			{"productId": "p2", "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	assert.NoError(t, json.Unmarshal(raw, &order))
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "p2", order.Items[0].ProductID)
	assert.Equal(t, 99.0, order.TotalAmount)
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 1},
			{"productId": "p2"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error": "items[1]: quantity must be a positive integer"}`, string(raw))
}

func TestGetOrderByID_WithEmailFilter(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"customerEmail": "A@B.com",
		"items": []map[string]interface{}{
			{"productId": "p1", "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Order
	assert.NoError(t, json.Unmarshal(raw, &created))

	// No email: the order is returned.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/orders/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Order
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	// Matching email in different case: still returned.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/"+created.ID+"?email=a%40b.com", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Mismatched email: indistinguishable from a missing order.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/orders/"+created.ID+"?email=other%40b.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Order not found"}`, string(raw))

	// Unknown id: same response shape.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/orders/ord_missing00000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Order not found"}`, string(raw))
}

func TestGetOrders_ListsSubmissions(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Empty(t, orders)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		resp, raw = doJSON(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
			"items": []map[string]interface{}{{"productId": "p1", "quantity": 1}},
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var order models.Order
		assert.NoError(t, json.Unmarshal(raw, &order))
		ids = append(ids, order.ID)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 2)
	assert.Equal(t, ids[0], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)
}
