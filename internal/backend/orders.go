package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/furnimart/storefront/internal/entity"
)

// idempotencyHeader carries the per-checkout-session key on order writes.
// A backend that honors it cannot record two orders for one payment.
const idempotencyHeader = "Idempotency-Key"

// SaveOrderRequest is the body of POST /order/saveNewOrder (the buy-now
// path). Price is the grand total including shipping.
type SaveOrderRequest struct {
	UserID        int                `json:"userId"`
	ProductID     int                `json:"productId"`
	ProductName   string             `json:"productName"`
	Quantity      int                `json:"quantity"`
	Price         decimal.Decimal    `json:"price"`
	Username      string             `json:"username"`
	Email         string             `json:"email"`
	MobileNumber  string             `json:"mobileNumber"`
	Address       string             `json:"address"`
	OrderType     entity.ProductType `json:"oderType"`
	OrderStatus   string             `json:"oderStatus"`
	PaymentStatus string             `json:"paymentStatus"`
}

// CheckoutCartRequest is the body of POST /order/checkout. The server turns
// the user's cart entries into orders and clears the cart.
type CheckoutCartRequest struct {
	UserID        int    `json:"userId"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	MobileNumber  string `json:"mobileNumber"`
	Address       string `json:"address"`
	PaymentStatus string `json:"paymentStatus"`
}

// SaveOrder persists a single buy-now order. idemKey ties retries of the same
// checkout session together.
func (c *Client) SaveOrder(ctx context.Context, req SaveOrderRequest, idemKey string) error {
	headers := map[string]string{idempotencyHeader: idemKey}
	return c.call(ctx, http.MethodPost, "/order/saveNewOrder", "save_order", headers, req, nil)
}

// CheckoutCart persists the user's whole cart as orders and clears it.
func (c *Client) CheckoutCart(ctx context.Context, req CheckoutCartRequest, idemKey string) error {
	headers := map[string]string{idempotencyHeader: idemKey}
	return c.call(ctx, http.MethodPost, "/order/checkout", "checkout_cart", headers, req, nil)
}

// GetAllOrders returns every order in the system (admin view).
func (c *Client) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.call(ctx, http.MethodGet, "/order/getAllOrders", "get_all_orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByUser returns one user's orders.
func (c *Client) GetOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error) {
	var orders []entity.Order
	path := fmt.Sprintf("/order/getOrdersByUserId/%d", userID)
	if err := c.call(ctx, http.MethodGet, path, "get_user_orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkOrderShipped transitions an order from "To Be Ship" to "Shipped".
func (c *Client) MarkOrderShipped(ctx context.Context, orderID int) error {
	path := fmt.Sprintf("/order/markAsShipped/%d", orderID)
	return c.call(ctx, http.MethodPut, path, "mark_shipped", nil, nil, nil)
}

// DeleteOrder removes an order record.
func (c *Client) DeleteOrder(ctx context.Context, orderID int) error {
	path := fmt.Sprintf("/order/deleteOrder/%d", orderID)
	return c.call(ctx, http.MethodDelete, path, "delete_order", nil, nil, nil)
}
