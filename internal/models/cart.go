package models

// CartItem is a single entry of the client-held shopping cart. Carts are
// owned by the client session and only ever reach the server as
// productId+quantity pairs inside an order submission.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
