package cartparser

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvorobets/cart-parser/internal/source"
	"github.com/vvorobets/cart-parser/internal/types"
	"github.com/vvorobets/cart-parser/internal/validation"
)

func textReader(text string) source.Reader {
	return source.ReaderFunc(func(ctx context.Context, name string) (string, error) {
		return text, nil
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestParse_ValidCart(t *testing.T) {
	p := New(textReader("Product name,Price,Quantity\nMollis consequat,9.00,2\n"), quietLogger())

	cart, err := p.Parse(context.Background(), "cart.csv")
	require.NoError(t, err)
	assert.Equal(t, []types.Item{{Name: "Mollis consequat", Price: 9, Quantity: 2}}, cart.Items)
	assert.InDelta(t, 18.0, cart.Total, 1e-9)
}

func TestParse_File(t *testing.T) {
	p := New(source.FileReader{}, quietLogger())

	cart, err := p.Parse(context.Background(), "../../testdata/cart2.csv")
	require.NoError(t, err)

	assert.Equal(t, []types.Item{
		{Name: "Mollis consequat", Price: 1.00, Quantity: 2},
		{Name: "Tvoluptatem", Price: 1.32, Quantity: 1},
		{Name: "Scelerisque lacinia", Price: 1.90, Quantity: 1},
		{Name: "Consectetur adipiscing", Price: 2.72, Quantity: 10},
		{Name: "Condimentum aliquet", Price: 1.30, Quantity: 1},
	}, cart.Items)
	assert.InDelta(t, 33.72, cart.Total, 1e-9)
}

func TestParse_ValidationError(t *testing.T) {
	p := New(textReader("Product name,Price,Quantity\nMollis consequat,2\nTvoluptatem,abcd,1"), quietLogger())

	cart, err := p.Parse(context.Background(), "cart.csv")
	require.Error(t, err)
	assert.Nil(t, cart)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 2)
	assert.Equal(t, validation.NewError(validation.ErrorTypeRow, 0, -1, "Expected row to have 3 cells but received 2."), validationErr.Errors[0])
	assert.Equal(t, validation.NewError(validation.ErrorTypeCell, 1, 1, `Expected cell to be a positive number but received "abcd".`), validationErr.Errors[1])
	assert.Equal(t, "validation failed with 2 errors", err.Error())
}

func TestParse_SingleValidationErrorMessage(t *testing.T) {
	_, err := ParseText("Product name,Price,Quantity\n,9.00,2")
	require.Error(t, err)
	assert.Equal(t, `validation failed: [cell] row 0, column 0: Expected cell to be a nonempty string but received "".`, err.Error())
}

func TestParse_ReaderErrorPropagates(t *testing.T) {
	p := New(source.FileReader{}, quietLogger())

	_, err := p.Parse(context.Background(), "does-not-exist.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestParseText_HeaderOnly(t *testing.T) {
	cart, err := ParseText("Product name,Price,Quantity\n")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestParseText_QuotedEmptyName(t *testing.T) {
	cart, err := ParseText("Product name,Price,Quantity\n\"\",9.00,2")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, `""`, cart.Items[0].Name)
}

func TestParseText_QuantityTooLarge(t *testing.T) {
	cart, err := ParseText("Product name,Price,Quantity\nWidget,1.00,99999999999999999999\n")
	require.Error(t, err)
	assert.Nil(t, cart)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, validation.ErrorTypeCell, validationErr.Errors[0].Type)
	assert.Equal(t, 2, validationErr.Errors[0].Column)
}

func TestParseText_LeadingBlankLine(t *testing.T) {
	_, err := ParseText("\nProduct name,Price,Quantity\nMollis consequat,9.00,2\n")

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 3)
}

func TestParseText_SkipsBlankDataLines(t *testing.T) {
	cart, err := ParseText("Product name,Price,Quantity\n\nMollis consequat,9.00,2\n\n")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 18.0, cart.Total, 1e-9)
}

func TestNew_DefaultLogger(t *testing.T) {
	p := New(textReader(""), nil)
	assert.NotNil(t, p.logger)
}
