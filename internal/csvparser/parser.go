// =============================================================================
// Cart Parser - CSV Line Parser Module
// =============================================================================
//
// This module turns the raw text of a cart file into lines and cells, and
// converts validated data lines into typed cart items.
//
// INPUT FORMAT:
//   Product name,Price,Quantity
//   Mollis consequat,9.00,2
//   Tvoluptatem,10.32,1
//
//   - Lines are separated by "\n"; a trailing "\r" on a line is dropped.
//   - Cells are separated by a plain comma. There is no quoting: a cell that
//     reads "" is the two-character string, not an empty value.
//   - Empty lines are not data rows.
//
// Cells are split verbatim, so `""` and rows with the wrong cell count reach
// the validator unchanged.
//
// =============================================================================

package csvparser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/vvorobets/cart-parser/internal/types"
)

// Delimiter separates cells within a line.
const Delimiter = ","

// =============================================================================
// LINE AND CELL SPLITTING
// =============================================================================

// SplitLines splits raw file contents into lines.
// Trailing carriage returns are stripped and empty lines are dropped, so the
// empty string after a final line break never becomes a row.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		line = TrimCR(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// SplitHeader returns the first line of text as the header and the
// remaining non-empty lines as data rows. The header is always the first
// line, even when that line is blank.
//
// PARAMETERS:
//   - text: The raw contents of a cart file.
//
// RETURNS:
//   - The header line with any trailing "\r" removed.
//   - The data lines, as SplitLines returns them.
func SplitHeader(text string) (string, []string) {
	end := strings.IndexByte(text, '\n')
	if end < 0 {
		return TrimCR(text), nil
	}
	return TrimCR(text[:end]), SplitLines(text[end+1:])
}

// SplitCells splits a single line into its cells.
func SplitCells(line string) []string {
	return strings.Split(TrimCR(line), Delimiter)
}

// TrimCR removes trailing carriage returns left over from CRLF line endings.
func TrimCR(line string) string {
	return strings.TrimRight(line, "\r")
}

// =============================================================================
// LINE PARSING
// =============================================================================

// ParseLine converts one data line into an Item.
//
// The line must already have passed row validation; cells that do not
// convert are left as zero values rather than reported.
func ParseLine(line string) types.Item {
	cells := SplitCells(line)

	item := types.Item{Name: cells[0]}
	if len(cells) > 1 {
		item.Price = ParseNumber(cells[1])
	}
	if len(cells) > 2 {
		item.Quantity = ParseInt(cells[2])
	}

	return item
}

// ParseNumber converts a cell to a float64 using the same lenient rules as
// the validator: surrounding whitespace is ignored. Unparseable cells give 0.
func ParseNumber(cell string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseInt converts a cell to an int from its leading run of digits, so
// "2.5" gives 2 and "1e3" gives 1. A leading "+" is allowed. Cells without
// leading digits give 0, and values past math.MaxInt are clamped to it.
func ParseInt(cell string) int {
	digits := strings.TrimPrefix(strings.TrimSpace(cell), "+")

	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(digits[:end])
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt
		}
		return 0
	}
	return n
}

// =============================================================================
// AGGREGATION
// =============================================================================

// CalcTotal returns the sum of price * quantity over all items.
// No rounding is applied.
func CalcTotal(items []types.Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
