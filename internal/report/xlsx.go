package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet WriteXLSX fills.
const SheetName = "Cart"

// xlsxHeaders are written in row 1 of the report sheet.
var xlsxHeaders = []string{"Product name", "Price", "Quantity", "Subtotal"}

// BuildXLSX creates a workbook with one row per item and a total row.
// Prices and subtotals are stored as numbers, rounded to the summary
// precision, so the sheet can be summed again in a spreadsheet.
func BuildXLSX(s Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it rather than adding a second sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, item := range s.Cart.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			item.Name,
			s.roundedMoney(item.Price),
			item.Quantity,
			s.roundedMoney(item.Subtotal()),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write item row %d: %w", i+1, err)
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(s.Cart.Items)+2)
	if err != nil {
		f.Close()
		return nil, err
	}
	totalRow := []interface{}{"Total", nil, nil, s.roundedMoney(s.Cart.Total)}
	if err := f.SetSheetRow(SheetName, totalCell, &totalRow); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write total row: %w", err)
	}

	return f, nil
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, s Summary) error {
	f, err := BuildXLSX(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s Summary) roundedMoney(v float64) float64 {
	rounded, _ := decimalRound(v, s.Precision).Float64()
	return rounded
}
