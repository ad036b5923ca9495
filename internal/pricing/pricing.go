// Package pricing computes order totals and the shipping tier for a given
// cart subtotal. Everything here is pure: no remote calls, no clock, no state.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Shipping tier boundaries. Each tier is inclusive on the lower bound and
// exclusive on the upper: a subtotal of exactly 5000 ships at 700.
var tiers = []struct {
	floor decimal.Decimal
	cost  decimal.Decimal
}{
	{decimal.NewFromInt(50000), decimal.NewFromInt(3500)},
	{decimal.NewFromInt(25000), decimal.NewFromInt(2500)},
	{decimal.NewFromInt(10000), decimal.NewFromInt(2000)},
	{decimal.NewFromInt(5000), decimal.NewFromInt(700)},
	{decimal.NewFromInt(0), decimal.NewFromInt(500)},
}

// Quote is the priced breakdown of a checkout: what the items cost, what
// delivery costs, and what the gateway will be asked to capture.
type Quote struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	GrandTotal   decimal.Decimal
}

// ComputeQuote derives the shipping tier and grand total for a subtotal.
// A zero subtotal still yields the lowest tier; callers gate checkout on a
// non-empty cart before trusting the quote.
func ComputeQuote(subtotal decimal.Decimal) (Quote, error) {
	if subtotal.IsNegative() {
		return Quote{}, fmt.Errorf("subtotal must not be negative, got %s", subtotal)
	}

	var cost decimal.Decimal
	for _, t := range tiers {
		if subtotal.GreaterThanOrEqual(t.floor) {
			cost = t.cost
			break
		}
	}

	return Quote{
		Subtotal:     subtotal,
		ShippingCost: cost,
		GrandTotal:   subtotal.Add(cost),
	}, nil
}

// MinorUnits returns the grand total in minor currency units (cents), rounded
// half-up, as the payment gateway expects it.
func (q Quote) MinorUnits() int64 {
	return q.GrandTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
