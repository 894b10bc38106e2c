package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
)

func TestExcelRenderer_Render(t *testing.T) {
	renderer := NewExcelRenderer()

	content, err := renderer.Render(adapter.Sheet{
		Name:   "Transactions",
		Header: []string{"Date", "Product", "Amount"},
		Rows: [][]any{
			{"2026-02-01", "Cabbage", decimal.RequireFromString("5000")},
			{"2026-02-03", "Onion", decimal.RequireFromString("37.04")},
		},
		Footer: []any{"Total", "", decimal.RequireFromString("5037.04")},
		Widths: []float64{12, 30, 14},
	})
	require.NoError(t, err)
	assert.Equal(t, XLSXContentType, renderer.ContentType())

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Transactions"}, f.GetSheetList())

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Date", "Product", "Amount"}, rows[0])
	assert.Equal(t, "37.04", rows[2][2])
	assert.Empty(t, rows[3])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "5037.04", rows[4][2])

	width, err := f.GetColWidth("Transactions", "B")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
}

func TestExcelRenderer_NoFooter(t *testing.T) {
	content, err := NewExcelRenderer().Render(adapter.Sheet{
		Name:   "2026-02-12",
		Header: []string{"Product"},
		Rows:   [][]any{{"Cabbage"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("2026-02-12")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "Sheet1"},
		{in: "Settlement 2026/02", want: "Settlement 2026-02"},
		{in: "a very long worksheet name that overflows", want: "a very long worksheet name that"},
		{in: "[draft]?", want: "(draft)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sheetName(tt.in))
		})
	}
}
