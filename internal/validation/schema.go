// =============================================================================
// Cart Parser - Schema Definition
// =============================================================================
//
// The cart schema is a fixed, ordered list of columns. Order matters twice:
// it is the expected header order, and it maps each row cell to the
// predicate that checks it.
//
//   | Position | Header       | Cell rule                     |
//   |----------|--------------|-------------------------------|
//   | 0        | Product name | nonempty string               |
//   | 1        | Price        | positive number (zero allowed)|
//   | 2        | Quantity     | positive number up to         |
//   |          |              | MaxQuantity (zero allowed)    |
//
// =============================================================================

package validation

import (
	"math"
	"strconv"
	"strings"
)

// CellKind identifies which predicate a column uses.
// It also selects the wording of cell error messages.
type CellKind string

const (
	// KindNonEmptyString requires any non-empty value.
	KindNonEmptyString CellKind = "nonempty string"

	// KindPositiveNumber requires a finite number >= 0.
	KindPositiveNumber CellKind = "positive number"
)

// Column describes one schema column.
type Column struct {
	// Name is the exact header text expected at this position.
	Name string

	// Kind names the rule applied to cells in this column.
	Kind CellKind

	// Predicate reports whether a cell value is acceptable.
	Predicate func(value string) bool
}

// Schema is an ordered list of columns.
type Schema []Column

// Names returns the expected header names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, column := range s {
		names[i] = column.Name
	}
	return names
}

// CartSchema is the schema every cart file is checked against.
// It is read-only and shared.
var CartSchema = Schema{
	{Name: "Product name", Kind: KindNonEmptyString, Predicate: IsNonEmptyString},
	{Name: "Price", Kind: KindPositiveNumber, Predicate: IsPositiveNumber},
	{Name: "Quantity", Kind: KindPositiveNumber, Predicate: IsQuantity},
}

// =============================================================================
// CELL VALIDATORS
// =============================================================================

// IsNonEmptyString reports whether value is not the empty string.
// No trimming is done, and the two-character literal `""` counts as content.
func IsNonEmptyString(value string) bool {
	return value != ""
}

// IsPositiveNumber reports whether value converts to a finite number >= 0.
// Surrounding whitespace is ignored. Zero is accepted.
func IsPositiveNumber(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return false
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return false
	}

	return number >= 0
}

// MaxQuantity is the largest quantity a cart line may carry.
const MaxQuantity = math.MaxInt32

// IsQuantity is IsPositiveNumber limited to MaxQuantity, so every accepted
// quantity converts to an int without overflow.
func IsQuantity(value string) bool {
	if !IsPositiveNumber(value) {
		return false
	}
	number, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return number <= MaxQuantity
}
