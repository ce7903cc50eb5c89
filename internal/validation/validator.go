// =============================================================================
// Cart Parser - Validation Engine
// =============================================================================
//
// This module validates the raw text of a cart file against CartSchema.
//
// VALIDATION STRATEGY:
//   Validation is performed at three levels, each with its own error type:
//   1. Header: every schema column must be named exactly, in order
//   2. Row:    every data line must have as many cells as the schema
//   3. Cell:   every cell must satisfy its column's predicate
//
// ERROR HANDLING:
//   - Errors are collected, not thrown
//   - Each error is addressed by type, row and column
//   - A row reports at most one error: a wrong cell count stops the row,
//     and otherwise the first failing cell does
//   - Header errors come first, then row errors in file order
//
// ADDRESSING:
//   Row indexes count data rows from 0, so the first line after the header
//   is row 0. Header errors always use row 0. Column is -1 when an error is
//   not about a specific column.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/vvorobets/cart-parser/internal/csvparser"
)

// =============================================================================
// ERROR DESCRIPTOR
// =============================================================================

// ErrorType classifies an ErrorDescriptor.
type ErrorType string

const (
	// ErrorTypeHeader marks a header name or position mismatch.
	ErrorTypeHeader ErrorType = "header"

	// ErrorTypeRow marks a data line with the wrong number of cells.
	ErrorTypeRow ErrorType = "row"

	// ErrorTypeCell marks a cell that fails its column's predicate.
	ErrorTypeCell ErrorType = "cell"
)

// NoColumn is the column of errors that do not concern one column.
const NoColumn = -1

// ErrorDescriptor describes one validation failure.
type ErrorDescriptor struct {
	// Type is one of header, row or cell.
	Type ErrorType `json:"type"`

	// Row is the 0-based data row index. Header errors use 0.
	Row int `json:"row"`

	// Column is the 0-based column index, or NoColumn.
	Column int `json:"column"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// NewError builds an ErrorDescriptor. It does no checking of its own.
func NewError(errType ErrorType, row, column int, message string) ErrorDescriptor {
	return ErrorDescriptor{
		Type:    errType,
		Row:     row,
		Column:  column,
		Message: message,
	}
}

// String renders the descriptor on one line for logs and terminals.
func (e ErrorDescriptor) String() string {
	if e.Column == NoColumn {
		return fmt.Sprintf("[%s] row %d: %s", e.Type, e.Row, e.Message)
	}
	return fmt.Sprintf("[%s] row %d, column %d: %s", e.Type, e.Row, e.Column, e.Message)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks raw cart text against CartSchema and returns every error
// found. An empty result means the text can be parsed.
func Validate(text string) []ErrorDescriptor {
	return ValidateWithSchema(text, CartSchema)
}

// ValidateWithSchema is Validate against an explicit schema.
func ValidateWithSchema(text string, schema Schema) []ErrorDescriptor {
	// Line 0 is the header even when it is blank; only data lines skip blanks.
	header, lines := csvparser.SplitHeader(text)

	errors := ValidateHeader(header, schema)

	for rowIndex, line := range lines {
		errors = append(errors, ValidateRow(line, rowIndex, schema)...)
	}

	return errors
}

// =============================================================================
// HEADER VALIDATION
// =============================================================================

// ValidateHeader compares the header cells with the schema column names.
// Cells beyond the schema length are ignored; a missing cell is reported
// as "undefined".
func ValidateHeader(line string, schema Schema) []ErrorDescriptor {
	var errors []ErrorDescriptor

	cells := csvparser.SplitCells(line)

	for i, column := range schema {
		actual := "undefined"
		if i < len(cells) {
			actual = cells[i]
			if actual == column.Name {
				continue
			}
		}

		errors = append(errors, NewError(
			ErrorTypeHeader,
			0,
			i,
			fmt.Sprintf("Expected header to be named %q but received %s.", column.Name, actual),
		))
	}

	return errors
}

// =============================================================================
// ROW VALIDATION
// =============================================================================

// ValidateRow checks one data line. It returns at most one error.
func ValidateRow(line string, rowIndex int, schema Schema) []ErrorDescriptor {
	cells := csvparser.SplitCells(line)

	if len(cells) != len(schema) {
		return []ErrorDescriptor{NewError(
			ErrorTypeRow,
			rowIndex,
			NoColumn,
			fmt.Sprintf("Expected row to have %d cells but received %d.", len(schema), len(cells)),
		)}
	}

	for i, column := range schema {
		if column.Predicate(cells[i]) {
			continue
		}

		return []ErrorDescriptor{NewError(
			ErrorTypeCell,
			rowIndex,
			i,
			fmt.Sprintf("Expected cell to be a %s but received \"%s\".", column.Kind, cells[i]),
		)}
	}

	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders errors one per line, in order.
func FormatErrors(errors []ErrorDescriptor) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Validation failed with %d error(s):\n", len(errors)))

	for _, e := range errors {
		sb.WriteString("  ")
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// CountByType tallies errors per type.
func CountByType(errors []ErrorDescriptor) map[ErrorType]int {
	counts := make(map[ErrorType]int)
	for _, e := range errors {
		counts[e.Type]++
	}
	return counts
}
