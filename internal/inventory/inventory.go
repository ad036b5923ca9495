// Package inventory is the admin stock adjuster. Edits are optimistic: the
// new value is returned immediately in an Optimistic state, the full record
// is written to the backend, and on rejection the server's truth is
// re-fetched and returned instead of silently keeping the local guess.
package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/session"
)

// Adjustment states.
const (
	StateOptimistic = "optimistic"
	StateConfirmed  = "confirmed"
)

// Backend is the slice of the store API inventory editing needs.
type Backend interface {
	GetProduct(ctx context.Context, id int, productType entity.ProductType) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p entity.Product) error
}

// Adjustment is the outcome of a stock edit: the product as the view should
// now display it, tagged with whether the server has confirmed it.
type Adjustment struct {
	Product entity.Product
	State   string
}

// Adjuster applies stock deltas for back-office operators.
type Adjuster struct {
	backend Backend
	sess    *session.Session
}

func NewAdjuster(b Backend, sess *session.Session) *Adjuster {
	return &Adjuster{backend: b, sess: sess}
}

// Adjust changes a product's stock by delta (usually +1/-1). Stock floors at
// zero. On server rejection the returned Adjustment carries the re-fetched
// record in StateConfirmed together with the rejection error, so the view
// reconciles instead of drifting.
func (a *Adjuster) Adjust(ctx context.Context, p entity.Product, delta int) (Adjustment, error) {
	if !a.sess.IsAdmin() {
		return Adjustment{Product: p, State: StateConfirmed}, fmt.Errorf("%w: admin role required", entity.ErrAuthRequired)
	}

	newStock := p.Stock + delta
	if newStock < 0 {
		return Adjustment{Product: p, State: StateConfirmed},
			fmt.Errorf("%w: stock cannot go below zero", entity.ErrValidation)
	}

	optimistic := p
	optimistic.Stock = newStock

	if err := a.backend.UpdateProduct(ctx, optimistic); err != nil {
		slog.Error("Stock update rejected, reconciling", "product_id", p.ID, "err", err)
		fresh, fetchErr := a.backend.GetProduct(ctx, p.ID, p.Type)
		if fetchErr != nil {
			// Could not reconcile either; hand back the pre-edit record.
			return Adjustment{Product: p, State: StateConfirmed}, err
		}
		return Adjustment{Product: *fresh, State: StateConfirmed}, err
	}

	return Adjustment{Product: optimistic, State: StateConfirmed}, nil
}

// Stage returns the optimistic view of an edit before the server round trip,
// for callers that render first and write second.
func Stage(p entity.Product, delta int) Adjustment {
	staged := p
	staged.Stock = p.Stock + delta
	if staged.Stock < 0 {
		staged.Stock = 0
	}
	return Adjustment{Product: staged, State: StateOptimistic}
}
