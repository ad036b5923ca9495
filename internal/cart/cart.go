// Package cart is the per-user cart aggregate. State is remote-authoritative:
// every mutation goes to the backend and the local view is re-fetched rather
// than patched, so all views read the same cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/furnimart/storefront/internal/backend"
	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/session"
	"github.com/furnimart/storefront/internal/stock"
)

// Backend is the slice of the store API the cart needs.
type Backend interface {
	GetCart(ctx context.Context, userID int) ([]entity.CartEntry, error)
	AddToCart(ctx context.Context, req backend.AddToCartRequest) error
	RemoveFromCart(ctx context.Context, cartID int) error
	GetProduct(ctx context.Context, id int, productType entity.ProductType) (*entity.Product, error)
}

// Service owns cart reads and mutations for one session.
type Service struct {
	backend   Backend
	sess      *session.Session
	listeners []func()
}

func NewService(b Backend, sess *session.Session) *Service {
	return &Service{backend: b, sess: sess}
}

// OnChange registers a callback fired after every successful mutation, so
// other views (nav badge, checkout summary) can refresh.
func (s *Service) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Service) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Fetch returns the current cart entries.
func (s *Service) Fetch(ctx context.Context) ([]entity.CartEntry, error) {
	if !s.sess.Authenticated() {
		return nil, entity.ErrAuthRequired
	}
	return s.backend.GetCart(ctx, s.sess.UserID)
}

// AddResult reports what actually landed in the cart after clamping and
// merging.
type AddResult struct {
	Entries  []entity.CartEntry
	Quantity int  // quantity now held for the product
	Clamped  bool // true if the request exceeded available stock
}

// Add puts a product in the cart. The requested quantity is clamped against a
// fresh stock snapshot, and an existing entry for the same (product, type) key
// is merged rather than duplicated: the stale entry is removed and one entry
// with the combined quantity is written.
func (s *Service) Add(ctx context.Context, productID int, productType entity.ProductType, requested int) (*AddResult, error) {
	if !s.sess.Authenticated() {
		return nil, entity.ErrAuthRequired
	}

	product, err := s.backend.GetProduct(ctx, productID, productType)
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	if !product.InStock() {
		return nil, fmt.Errorf("%w: %s is out of stock", entity.ErrStockConflict, product.Name)
	}

	entries, err := s.backend.GetCart(ctx, s.sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	wanted := requested
	if existing := findEntry(entries, productID, productType); existing != nil {
		wanted += existing.Quantity
		if err := s.backend.RemoveFromCart(ctx, existing.CartID); err != nil {
			return nil, fmt.Errorf("failed to replace existing cart entry: %w", err)
		}
	}

	quantity := stock.ClampQuantity(wanted, product.Stock)
	if err := s.backend.AddToCart(ctx, backend.AddToCartRequest{
		UserID:      s.sess.UserID,
		ProductID:   productID,
		ProductType: productType,
		Quantity:    quantity,
	}); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	slog.Info("Added item to cart", "user_id", s.sess.UserID, "product_id", productID, "quantity", quantity)

	refreshed, err := s.backend.GetCart(ctx, s.sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh cart: %w", err)
	}
	s.notify()

	return &AddResult{
		Entries:  refreshed,
		Quantity: quantity,
		Clamped:  quantity < wanted,
	}, nil
}

// Remove deletes a cart entry. Removing an entry that is already gone counts
// as success: absence is the desired end state.
func (s *Service) Remove(ctx context.Context, cartID int) ([]entity.CartEntry, error) {
	if !s.sess.Authenticated() {
		return nil, entity.ErrAuthRequired
	}

	err := s.backend.RemoveFromCart(ctx, cartID)
	var rejection *backend.RejectionError
	if err != nil && !errors.As(err, &rejection) {
		return nil, fmt.Errorf("failed to remove cart entry: %w", err)
	}
	if rejection != nil {
		slog.Debug("Cart entry already removed", "cart_id", cartID, "message", rejection.Message)
	}

	refreshed, err := s.backend.GetCart(ctx, s.sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh cart: %w", err)
	}
	s.notify()
	return refreshed, nil
}

// Subtotal sums quantity times the server's price snapshot over the entries.
func Subtotal(entries []entity.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

func findEntry(entries []entity.CartEntry, productID int, productType entity.ProductType) *entity.CartEntry {
	for i := range entries {
		if entries[i].ProductID == productID && entries[i].ProductType == productType {
			return &entries[i]
		}
	}
	return nil
}
