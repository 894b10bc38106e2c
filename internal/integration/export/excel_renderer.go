// Package export renders worksheets into xlsx workbooks.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
)

// XLSXContentType is the MIME type of rendered workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheetName = "Sheet1"
	maxSheetNameLen  = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// ExcelRenderer implements adapter.SpreadsheetRenderer with excelize.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer.
func NewExcelRenderer() adapter.SpreadsheetRenderer {
	return &ExcelRenderer{}
}

// ContentType returns the xlsx MIME type.
func (r *ExcelRenderer) ContentType() string {
	return XLSXContentType
}

// Render writes the sheet into a single-sheet workbook.
func (r *ExcelRenderer) Render(sheet adapter.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(sheet.Name)
	if name != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, name); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	row := 1
	if len(sheet.Header) > 0 {
		if err := writeRow(f, name, row, toCells(sheet.Header)); err != nil {
			return nil, err
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetRowStyle(name, row, row, style); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		row++
	}

	for _, values := range sheet.Rows {
		if err := writeRow(f, name, row, values); err != nil {
			return nil, err
		}
		row++
	}

	if len(sheet.Footer) > 0 {
		// One blank row separates the footer
		if err := writeRow(f, name, row+1, sheet.Footer); err != nil {
			return nil, err
		}
	}

	for i, width := range sheet.Widths {
		if width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = cellValue(v)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// cellValue turns decimals into numbers so spreadsheet formulas work on them.
func cellValue(v any) any {
	switch value := v.(type) {
	case decimal.Decimal:
		return value.InexactFloat64()
	case *decimal.Decimal:
		if value == nil {
			return nil
		}
		return value.InexactFloat64()
	default:
		return v
	}
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func sheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		return defaultSheetName
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}
