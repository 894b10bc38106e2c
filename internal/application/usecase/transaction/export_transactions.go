package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// ExportTransactionsInput represents the input for the transactions export.
type ExportTransactionsInput struct {
	FilterInput
}

// ExportTransactionsOutput holds the rendered workbook.
type ExportTransactionsOutput struct {
	Content     []byte
	ContentType string
	FileName    string
	TotalAmount decimal.Decimal
	RowCount    int
}

// ExportTransactionsUseCase renders every matching transaction as a workbook.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	vendorRepo      adapter.VendorRepository
	renderer        adapter.SpreadsheetRenderer
	clock           valueobject.Clock
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	vendorRepo adapter.VendorRepository,
	renderer adapter.SpreadsheetRenderer,
	clock valueobject.Clock,
) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
		renderer:        renderer,
		clock:           clock,
	}
}

// Execute exports the filtered set without pagination.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	filter, err := resolveFilter(ctx, uc.vendorRepo, uc.clock, input.FilterInput)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindAllByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for export: %w", err)
	}
	rows, err := withVendorNames(ctx, uc.vendorRepo, transactions)
	if err != nil {
		return nil, err
	}

	sheet := adapter.Sheet{
		Name:   "Transactions",
		Header: []string{"Date", "Vendor", "Product", "Unit", "Unit Price", "Qty", "Amount", "Registered Time"},
		Widths: []float64{12, 24, 28, 10, 14, 10, 16, 16},
	}
	amounts := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		t := row.Transaction
		sheet.Rows = append(sheet.Rows, []any{
			t.DateKey,
			row.VendorName,
			t.ProductName,
			t.ProductUnit,
			t.UnitPrice,
			t.Qty,
			t.Amount,
			t.RegisteredTimeKST,
		})
		amounts = append(amounts, t.Amount)
	}
	total := valueobject.SumAmounts(amounts...)
	sheet.Footer = []any{"Total", "", "", "", "", "", total, ""}

	content, err := uc.renderer.Render(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to render transactions export: %w", err)
	}

	return &ExportTransactionsOutput{
		Content:     content,
		ContentType: uc.renderer.ContentType(),
		FileName:    fmt.Sprintf("transactions_%s.xlsx", uc.clock.NowDateKey()),
		TotalAmount: total,
		RowCount:    len(rows),
	}, nil
}
