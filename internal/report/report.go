// =============================================================================
// Cart Parser - Report Writers
// =============================================================================
//
// This module renders a parsed cart for people and for other systems.
//
// FORMATS:
//   text - aligned table for terminals
//   json - machine-readable summary
//   xml  - <cart> document
//   xlsx - workbook with a single Cart sheet
//
// ROUNDING:
//   Cart totals are kept unrounded in memory. This is the only place they are
//   rounded, using decimal arithmetic so 33.720000000000006 prints as 33.72.
//
// =============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/vvorobets/cart-parser/internal/types"
	"github.com/vvorobets/cart-parser/internal/validation"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatJSON, FormatXML, FormatXLSX}

// IsFormat reports whether name is a supported format.
func IsFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatText {
		return ".txt"
	}
	return "." + format
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is everything a report needs.
type Summary struct {
	// Source is the name the cart was read from.
	Source string

	// Cart is the parsed cart.
	Cart *types.Cart

	// Currency is printed next to money values, e.g. "USD".
	Currency string

	// Precision is the number of decimal places for money values.
	Precision int32
}

// NewSummary builds a Summary.
func NewSummary(source string, cart *types.Cart, currency string, precision int32) Summary {
	return Summary{
		Source:    source,
		Cart:      cart,
		Currency:  currency,
		Precision: precision,
	}
}

// FormatMoney rounds v to precision decimal places.
func FormatMoney(v float64, precision int32) string {
	return decimalRound(v, precision).StringFixed(precision)
}

func decimalRound(v float64, precision int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(precision)
}

func (s Summary) money(v float64) string {
	return FormatMoney(v, s.Precision)
}

// Write renders s in the given format.
func Write(w io.Writer, format string, s Summary) error {
	switch format {
	case FormatText:
		return WriteText(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatXML:
		return WriteXML(w, s)
	case FormatXLSX:
		return WriteXLSX(w, s)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// =============================================================================
// TEXT
// =============================================================================

// WriteText writes an aligned table of items followed by the total.
func WriteText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Source: %s\n\n", s.Source)
	fmt.Fprintln(tw, "Product name\tPrice\tQuantity\tSubtotal")
	for _, item := range s.Cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			item.Name,
			s.money(item.Price),
			item.Quantity,
			s.money(item.Subtotal()),
		)
	}

	total := s.money(s.Cart.Total)
	if s.Currency != "" {
		total += " " + s.Currency
	}
	fmt.Fprintf(tw, "\nTotal: %s\n", total)

	return tw.Flush()
}

// =============================================================================
// JSON
// =============================================================================

type jsonItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal"`
}

type jsonReport struct {
	Source   string     `json:"source"`
	Items    []jsonItem `json:"items"`
	Total    string     `json:"total"`
	Currency string     `json:"currency,omitempty"`
}

// WriteJSON writes the cart as indented JSON. Money totals are strings so
// the rounding survives decoding.
func WriteJSON(w io.Writer, s Summary) error {
	out := jsonReport{
		Source:   s.Source,
		Items:    make([]jsonItem, len(s.Cart.Items)),
		Total:    s.money(s.Cart.Total),
		Currency: s.Currency,
	}
	for i, item := range s.Cart.Items {
		out.Items[i] = jsonItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: s.money(item.Subtotal()),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// WriteErrors writes one line per validation error.
func WriteErrors(w io.Writer, errs []validation.ErrorDescriptor) error {
	_, err := io.WriteString(w, strings.TrimRight(validation.FormatErrors(errs), "\n")+"\n")
	return err
}
