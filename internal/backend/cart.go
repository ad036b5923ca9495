package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/furnimart/storefront/internal/entity"
)

// AddToCartRequest is the body of POST /cart/add. The server takes its own
// price snapshot; the client never sends a price.
type AddToCartRequest struct {
	UserID      int                `json:"userId"`
	ProductID   int                `json:"productId"`
	ProductType entity.ProductType `json:"productType"`
	Quantity    int                `json:"quantity"`
}

// GetCart returns the user's current cart entries.
func (c *Client) GetCart(ctx context.Context, userID int) ([]entity.CartEntry, error) {
	var entries []entity.CartEntry
	path := fmt.Sprintf("/cart/get/%d", userID)
	if err := c.call(ctx, http.MethodGet, path, "get_cart", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddToCart creates a cart entry server-side.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) error {
	return c.call(ctx, http.MethodPost, "/cart/add", "add_to_cart", nil, req, nil)
}

// RemoveFromCart deletes a cart entry by its id.
func (c *Client) RemoveFromCart(ctx context.Context, cartID int) error {
	path := fmt.Sprintf("/cart/remove/%d", cartID)
	return c.call(ctx, http.MethodDelete, path, "remove_from_cart", nil, nil, nil)
}
