package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0, 5))
	assert.Equal(t, 1, ClampQuantity(-3, 5))
	assert.Equal(t, 5, ClampQuantity(999, 5))
	assert.Equal(t, 3, ClampQuantity(3, 5))
	assert.Equal(t, 1, ClampQuantity(1, 1))

	// Out-of-stock products are not selectable; the clamp refuses rather
	// than inventing a quantity.
	assert.Equal(t, 0, ClampQuantity(2, 0))
	assert.Equal(t, 0, ClampQuantity(2, -1))
}

func TestClampStaysInRange(t *testing.T) {
	for available := 1; available <= 10; available++ {
		for requested := -2; requested <= 15; requested++ {
			got := ClampQuantity(requested, available)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, available)
		}
	}
}

func TestIncrementDecrementGuards(t *testing.T) {
	assert.True(t, CanIncrement(1, 5))
	assert.False(t, CanIncrement(5, 5))
	assert.False(t, CanIncrement(6, 5))

	assert.True(t, CanDecrement(2))
	assert.False(t, CanDecrement(1))
	assert.False(t, CanDecrement(0))
}
