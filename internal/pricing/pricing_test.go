package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(t *testing.T, subtotal string) Quote {
	t.Helper()
	q, err := ComputeQuote(decimal.RequireFromString(subtotal))
	require.NoError(t, err)
	return q
}

func TestShippingTierBoundaries(t *testing.T) {
	cases := []struct {
		subtotal string
		shipping string
	}{
		{"0", "500"},
		{"4999.99", "500"},
		{"5000", "700"},
		{"9999.99", "700"},
		{"10000", "2000"},
		{"24999.99", "2000"},
		{"25000", "2500"},
		{"49999.99", "2500"},
		{"50000", "3500"},
		{"125000", "3500"},
	}

	for _, tc := range cases {
		q := quote(t, tc.subtotal)
		assert.True(t, q.ShippingCost.Equal(decimal.RequireFromString(tc.shipping)),
			"subtotal %s: want shipping %s, got %s", tc.subtotal, tc.shipping, q.ShippingCost)
	}
}

func TestGrandTotalIsSubtotalPlusShipping(t *testing.T) {
	for _, subtotal := range []string{"0", "1", "4500", "5000", "30000", "49999.99", "99999"} {
		q := quote(t, subtotal)
		assert.True(t, q.GrandTotal.Equal(q.Subtotal.Add(q.ShippingCost)),
			"subtotal %s: grand total %s != %s + %s", subtotal, q.GrandTotal, q.Subtotal, q.ShippingCost)
	}
}

func TestCartScenarios(t *testing.T) {
	a := quote(t, "4500")
	assert.True(t, a.ShippingCost.Equal(decimal.NewFromInt(500)))
	assert.True(t, a.GrandTotal.Equal(decimal.NewFromInt(5000)))

	b := quote(t, "30000")
	assert.True(t, b.ShippingCost.Equal(decimal.NewFromInt(2500)))
	assert.True(t, b.GrandTotal.Equal(decimal.NewFromInt(32500)))
}

func TestNegativeSubtotalRejected(t *testing.T) {
	_, err := ComputeQuote(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestMinorUnits(t *testing.T) {
	// 4500 + 500 shipping = 5000.00 -> 500000 cents.
	assert.Equal(t, int64(500000), quote(t, "4500").MinorUnits())

	// Fractional grand totals round half-up.
	q := quote(t, "1234.555")
	assert.Equal(t, int64(173456), q.MinorUnits()) // 1734.555 -> 173456
}
