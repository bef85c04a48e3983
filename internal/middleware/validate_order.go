package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
)

// OrderRequestKey is the Fiber locals key under which ValidateOrderBody
// stores the parsed models.OrderRequest for the downstream handler.
const OrderRequestKey = "orderRequest"

// ValidateOrderBody returns a middleware that shape-checks the body of an
// order submission. It is a pure check: no store or network access. The
// check fails fast at the first faulty element and responds 400 with an
// index-qualified diagnostic. Product existence is deliberately not checked
// here; unknown ids are handled leniently at creation time.
func ValidateOrderBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &body); err != nil || body == nil {
			return badRequest(c, "Request body must be a JSON object")
		}

		var rawItems []json.RawMessage
		itemsRaw, ok := body["items"]
		if !ok || string(itemsRaw) == "null" || json.Unmarshal(itemsRaw, &rawItems) != nil {
			return badRequest(c, "Body must include an items array")
		}

		req := models.OrderRequest{Items: make([]models.OrderItemRequest, 0, len(rawItems))}

		for index, rawItem := range rawItems {
			var item map[string]json.RawMessage
			if err := json.Unmarshal(rawItem, &item); err != nil || item == nil {
				return badRequest(c, fmt.Sprintf("items[%d]: each item must be an object with productId and quantity", index))
			}

			var productID string
			if err := json.Unmarshal(item["productId"], &productID); err != nil || strings.TrimSpace(productID) == "" {
				return badRequest(c, fmt.Sprintf("items[%d]: productId must be a non-empty string", index))
			}

			quantity, ok := parsePositiveInteger(item["quantity"])
			if !ok {
				return badRequest(c, fmt.Sprintf("items[%d]: quantity must be a positive integer", index))
			}

			req.Items = append(req.Items, models.OrderItemRequest{
				ProductID: productID,
				Quantity:  quantity,
			})
		}

		if emailRaw, ok := body["customerEmail"]; ok {
			var email string
			if err := json.Unmarshal(emailRaw, &email); err == nil {
				req.CustomerEmail = email
			}
		}

		c.Locals(OrderRequestKey, req)
		return c.Next()
	}
}

// parsePositiveInteger accepts JSON numbers with an integral value of at
// least 1. Fractional values such as 1.5 are rejected rather than truncated.
func parsePositiveInteger(raw json.RawMessage) (int, bool) {
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	if value < 1 || value != math.Trunc(value) {
		return 0, false
	}
	// Oversized quantities survive the shape check; order creation clamps
	// them to the allowed range.
	if value > math.MaxInt32 {
		value = math.MaxInt32
	}
	return int(value), true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
