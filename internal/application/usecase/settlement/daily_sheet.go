package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// DailySheetInput selects one vendor's business day.
type DailySheetInput struct {
	VendorID string
	DateKey  string
}

// DailySheet is one vendor's lines for a single date key.
type DailySheet struct {
	Vendor       *entity.Vendor
	DateKey      string
	Transactions []*entity.Transaction
	TotalAmount  decimal.Decimal
}

// GetDailySheetUseCase builds the per-day view used before issuing.
type GetDailySheetUseCase struct {
	transactionRepo adapter.TransactionRepository
	vendorRepo      adapter.VendorRepository
}

// NewGetDailySheetUseCase creates a new GetDailySheetUseCase instance.
func NewGetDailySheetUseCase(transactionRepo adapter.TransactionRepository, vendorRepo adapter.VendorRepository) *GetDailySheetUseCase {
	return &GetDailySheetUseCase{transactionRepo: transactionRepo, vendorRepo: vendorRepo}
}

// Execute returns rows ordered by registered time then creation time.
func (uc *GetDailySheetUseCase) Execute(ctx context.Context, input DailySheetInput) (*DailySheet, error) {
	vendorID, err := valueobject.ParseID(input.VendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	dateKey, err := valueobject.EnsureDateKey(input.DateKey)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	vendor, err := uc.vendorRepo.FindActiveByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementVendorNotFound,
				"vendor not found",
				domainerror.ErrVendorNotFoundForSettlement,
			)
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	rows, err := uc.transactionRepo.FindActiveByVendorAndDate(ctx, vendorID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily transactions: %w", err)
	}

	amounts := make([]decimal.Decimal, len(rows))
	for i, t := range rows {
		amounts[i] = t.Amount
	}

	return &DailySheet{
		Vendor:       vendor,
		DateKey:      dateKey,
		Transactions: rows,
		TotalAmount:  valueobject.SumAmounts(amounts...),
	}, nil
}

// ExportDailySheetUseCase renders the daily sheet as a workbook.
type ExportDailySheetUseCase struct {
	daily    *GetDailySheetUseCase
	renderer adapter.SpreadsheetRenderer
}

// NewExportDailySheetUseCase creates a new ExportDailySheetUseCase instance.
func NewExportDailySheetUseCase(daily *GetDailySheetUseCase, renderer adapter.SpreadsheetRenderer) *ExportDailySheetUseCase {
	return &ExportDailySheetUseCase{daily: daily, renderer: renderer}
}

// Execute exports the daily rows with a total row.
func (uc *ExportDailySheetUseCase) Execute(ctx context.Context, input DailySheetInput) (*ExportOutput, error) {
	sheet, err := uc.daily.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	out := adapter.Sheet{
		Name:   sheet.DateKey,
		Header: []string{"Time", "Product", "Unit", "Unit Price", "Qty", "Amount"},
		Widths: []float64{12, 28, 10, 14, 10, 16},
		Footer: []any{"Total", sheet.Vendor.Name, "", "", "", sheet.TotalAmount},
	}
	for _, t := range sheet.Transactions {
		out.Rows = append(out.Rows, []any{
			t.RegisteredTimeKST,
			t.ProductName,
			t.ProductUnit,
			t.UnitPrice,
			t.Qty,
			t.Amount,
		})
	}

	content, err := uc.renderer.Render(out)
	if err != nil {
		return nil, fmt.Errorf("failed to render daily sheet: %w", err)
	}

	return &ExportOutput{
		Content:     content,
		ContentType: uc.renderer.ContentType(),
		FileName:    fmt.Sprintf("daily_%s_%s.xlsx", sheet.DateKey, sheet.Vendor.ID),
		TotalAmount: sheet.TotalAmount,
	}, nil
}
