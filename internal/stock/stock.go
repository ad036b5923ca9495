// Package stock bounds purchase quantities to on-hand inventory. Both the
// add-to-cart and buy-now flows clamp through here so the rules cannot drift.
package stock

// ClampQuantity bounds a requested quantity to [1, available]. Products with
// no stock are not selectable at all; callers check that before asking for a
// quantity, and a non-positive available returns 0 to make misuse visible.
func ClampQuantity(requested, available int) int {
	if available <= 0 {
		return 0
	}
	if requested < 1 {
		return 1
	}
	if requested > available {
		return available
	}
	return requested
}

// CanIncrement reports whether one more unit can be selected.
func CanIncrement(current, available int) bool {
	return current < available
}

// CanDecrement reports whether one fewer unit can be selected. The selector
// floors at a single unit; removing the line entirely is a cart operation.
func CanDecrement(current int) bool {
	return current > 1
}
