package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
)

// ExportOutput holds a rendered workbook.
type ExportOutput struct {
	Content     []byte
	ContentType string
	FileName    string
	TotalAmount decimal.Decimal
}

// ExportSettlementUseCase renders an issued settlement's snapshot as a workbook.
type ExportSettlementUseCase struct {
	get      *GetSettlementUseCase
	renderer adapter.SpreadsheetRenderer
}

// NewExportSettlementUseCase creates a new ExportSettlementUseCase instance.
func NewExportSettlementUseCase(get *GetSettlementUseCase, renderer adapter.SpreadsheetRenderer) *ExportSettlementUseCase {
	return &ExportSettlementUseCase{get: get, renderer: renderer}
}

// Execute exports the frozen items, never the live transactions.
func (uc *ExportSettlementUseCase) Execute(ctx context.Context, settlementID string) (*ExportOutput, error) {
	found, err := uc.get.Execute(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	s := found.Settlement

	sheet := adapter.Sheet{
		Name:   "Settlement",
		Header: []string{"Date", "Product", "Unit", "Unit Price", "Qty", "Amount", "Registered Time"},
		Widths: []float64{12, 28, 10, 14, 10, 16, 16},
		Footer: []any{"Total", found.VendorName, fmt.Sprintf("%s ~ %s", s.RangeStartKey, s.RangeEndKey), "", "", s.TotalAmount, ""},
	}
	for _, item := range s.Items {
		sheet.Rows = append(sheet.Rows, []any{
			item.DateKey,
			item.ProductName,
			item.ProductUnit,
			item.UnitPrice,
			item.Qty,
			item.Amount,
			item.RegisteredTimeKST,
		})
	}

	content, err := uc.renderer.Render(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to render settlement export: %w", err)
	}

	return &ExportOutput{
		Content:     content,
		ContentType: uc.renderer.ContentType(),
		FileName:    fmt.Sprintf("settlement_%s_%s.xlsx", s.IssueDateKey, s.ID),
		TotalAmount: s.TotalAmount,
	}, nil
}
