// Package orders is the read-only projection of persisted orders, plus the
// two privileged admin transitions (mark shipped, delete). Admin mutations
// are applied to the local list optimistically; if the backend rejects, the
// list is reloaded from the server.
package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/session"
)

// Backend is the slice of the store API the order views need.
type Backend interface {
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	GetOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error)
	MarkOrderShipped(ctx context.Context, orderID int) error
	DeleteOrder(ctx context.Context, orderID int) error
}

// Service reads order history and applies admin status transitions.
type Service struct {
	backend Backend
	sess    *session.Session
}

func NewService(b Backend, sess *session.Session) *Service {
	return &Service{backend: b, sess: sess}
}

// ForUser returns the current user's orders.
func (s *Service) ForUser(ctx context.Context) ([]entity.Order, error) {
	if !s.sess.Authenticated() {
		return nil, entity.ErrAuthRequired
	}
	return s.backend.GetOrdersByUser(ctx, s.sess.UserID)
}

// All returns every order in the system. Admin only.
func (s *Service) All(ctx context.Context) ([]entity.Order, error) {
	if !s.sess.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", entity.ErrAuthRequired)
	}
	return s.backend.GetAllOrders(ctx)
}

// Pending filters orders still waiting to ship.
func Pending(orders []entity.Order) []entity.Order {
	return filterByStatus(orders, entity.OrderToBeShipped)
}

// Shipped filters orders already shipped.
func Shipped(orders []entity.Order) []entity.Order {
	return filterByStatus(orders, entity.OrderShipped)
}

func filterByStatus(orders []entity.Order, status string) []entity.Order {
	var out []entity.Order
	for _, o := range orders {
		if o.OrderStatus == status {
			out = append(out, o)
		}
	}
	return out
}

// MarkShipped transitions an order to "Shipped". The returned list is the
// caller's list with the order updated optimistically; on backend rejection
// the list is reloaded from the server and the error returned alongside it.
func (s *Service) MarkShipped(ctx context.Context, list []entity.Order, orderID int) ([]entity.Order, error) {
	if !s.sess.IsAdmin() {
		return list, fmt.Errorf("%w: admin role required", entity.ErrAuthRequired)
	}

	updated := make([]entity.Order, len(list))
	copy(updated, list)
	for i := range updated {
		if updated[i].OrderID == orderID {
			updated[i].OrderStatus = entity.OrderShipped
		}
	}

	if err := s.backend.MarkOrderShipped(ctx, orderID); err != nil {
		slog.Error("Mark-shipped rejected, reloading", "order_id", orderID, "err", err)
		return s.reload(ctx, list, err)
	}
	return updated, nil
}

// Delete removes an order. Same optimistic-then-reload contract as
// MarkShipped.
func (s *Service) Delete(ctx context.Context, list []entity.Order, orderID int) ([]entity.Order, error) {
	if !s.sess.IsAdmin() {
		return list, fmt.Errorf("%w: admin role required", entity.ErrAuthRequired)
	}

	var updated []entity.Order
	for _, o := range list {
		if o.OrderID != orderID {
			updated = append(updated, o)
		}
	}

	if err := s.backend.DeleteOrder(ctx, orderID); err != nil {
		slog.Error("Order delete rejected, reloading", "order_id", orderID, "err", err)
		return s.reload(ctx, list, err)
	}
	return updated, nil
}

func (s *Service) reload(ctx context.Context, fallback []entity.Order, cause error) ([]entity.Order, error) {
	fresh, err := s.backend.GetAllOrders(ctx)
	if err != nil {
		// Keep the stale list rather than blanking the view.
		return fallback, cause
	}
	return fresh, cause
}
