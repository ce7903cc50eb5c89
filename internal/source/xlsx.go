package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads a cart from the first sheet of a workbook.
// Each sheet row becomes one comma-joined line, so the result goes through
// exactly the same validation as a CSV file.
//
// LIMITATIONS:
//   - Rows are padded with empty cells up to the header width, because
//     excelize drops trailing blank cells. A blank Quantity is then a cell
//     error, as it is in a CSV file.
//   - Cell values are joined as-is. A cell containing a comma splits into
//     two cells and the row fails the cell count check.
type XLSXReader struct {
	// Sheet selects a sheet by name. Empty means the first sheet.
	Sheet string
}

// ReadFile implements Reader.
func (r XLSXReader) ReadFile(_ context.Context, name string) (string, error) {
	f, err := excelize.OpenFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := r.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read rows: %w", err)
	}

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		for len(row) < width && len(row) > 0 {
			row = append(row, "")
		}
		lines[i] = strings.Join(row, ",")
	}

	return strings.Join(lines, "\n"), nil
}
