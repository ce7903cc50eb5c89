// =============================================================================
// Cart Parser - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - cartparser
//   - report
//   - transport/http
//
// =============================================================================

package types

// =============================================================================
// CART TYPES
// =============================================================================

// Item represents a single product row of the cart file.
// It is only created from a line that has already passed validation.
type Item struct {
	// Name is the product name, taken verbatim from the first cell.
	Name string `json:"name"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
}

// Subtotal returns Price * Quantity without rounding.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the result of a successful parse.
type Cart struct {
	// Items contains the parsed products in file order.
	Items []Item `json:"items"`

	// Total is the sum of all item subtotals.
	// It is not rounded; rounding happens when the cart is formatted.
	Total float64 `json:"total"`
}
