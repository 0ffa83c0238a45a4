// Package pricing computes the price of one configured item before it is
// committed to the cart.
package pricing

import "errors"

// AddOnUnitPrice is the flat surcharge per selected add-on, in whole
// rupees. Spice level carries no price delta.
const AddOnUnitPrice int64 = 30

var (
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("pricing: quantity must be a positive integer")
	// ErrInvalidAddOnCount is returned for negative add-on counts.
	ErrInvalidAddOnCount = errors.New("pricing: add-on count must not be negative")
)

// LinePrice returns (basePrice + addOnCount*AddOnUnitPrice) * quantity.
func LinePrice(basePrice int64, addOnCount, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if addOnCount < 0 {
		return 0, ErrInvalidAddOnCount
	}
	return (basePrice + int64(addOnCount)*AddOnUnitPrice) * int64(quantity), nil
}

// IncrementQuantity steps the customizer quantity up.
func IncrementQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q + 1
}

// DecrementQuantity steps the customizer quantity down, never below 1.
// Zero is only reachable through explicit cart removal.
func DecrementQuantity(q int) int {
	if q <= 1 {
		return 1
	}
	return q - 1
}
