package csvparser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvorobets/cart-parser/internal/types"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t,
		[]string{"Product name,Price,Quantity", "Mollis consequat,9.00,2"},
		SplitLines("Product name,Price,Quantity\r\nMollis consequat,9.00,2\r\n"),
	)
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\n\n\r\nb\n"))
	assert.Empty(t, SplitLines(""))
}

func TestSplitHeader(t *testing.T) {
	header, rows := SplitHeader("Product name,Price,Quantity\r\n\r\nMollis consequat,9.00,2\r\n")
	assert.Equal(t, "Product name,Price,Quantity", header)
	assert.Equal(t, []string{"Mollis consequat,9.00,2"}, rows)

	header, rows = SplitHeader("\nProduct name,Price,Quantity\n")
	assert.Empty(t, header)
	assert.Equal(t, []string{"Product name,Price,Quantity"}, rows)

	header, rows = SplitHeader("Product name,Price,Quantity")
	assert.Equal(t, "Product name,Price,Quantity", header)
	assert.Empty(t, rows)

	header, rows = SplitHeader("")
	assert.Empty(t, header)
	assert.Empty(t, rows)
}

func TestSplitCells(t *testing.T) {
	assert.Equal(t, []string{"Mollis consequat", "9.00", "2"}, SplitCells("Mollis consequat,9.00,2\r"))
	assert.Equal(t, []string{`""`, "9.00", "2"}, SplitCells(`"",9.00,2`))
	assert.Equal(t, []string{""}, SplitCells(""))
}

func TestParseLine(t *testing.T) {
	assert.Equal(t,
		types.Item{Name: "Mollis consequat", Price: 9.00, Quantity: 2},
		ParseLine("Mollis consequat,9.00,2\r"),
	)
	assert.Equal(t,
		types.Item{Name: "Tvoluptatem", Price: 10.32, Quantity: 1},
		ParseLine("Tvoluptatem,10.32,1"),
	)
}

func TestParseLine_KeepsNameVerbatim(t *testing.T) {
	item := ParseLine(" Mollis consequat,9.00,2")
	assert.Equal(t, " Mollis consequat", item.Name)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 2, ParseInt("2"))
	assert.Equal(t, 2, ParseInt(" 2 "))
	assert.Equal(t, 2, ParseInt("2.9"))
	assert.Equal(t, 0, ParseInt("0"))
	assert.Equal(t, 1, ParseInt("1e3"))
	assert.Equal(t, 5, ParseInt("+5"))
	assert.Equal(t, 0, ParseInt(".5"))
	assert.Equal(t, 0, ParseInt("abcd"))
	assert.Equal(t, math.MaxInt, ParseInt("99999999999999999999"))
}

func TestCalcTotal(t *testing.T) {
	assert.InDelta(t, 6.72, CalcTotal([]types.Item{{Price: 2.72, Quantity: 1}, {Price: 2, Quantity: 2}}), 1e-9)
	assert.InDelta(t, 3.97, CalcTotal([]types.Item{{Price: 1.99, Quantity: 1}, {Price: 0.99, Quantity: 2}}), 1e-9)
	assert.Zero(t, CalcTotal(nil))
}
