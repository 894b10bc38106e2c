package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

var settlementNow = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

type stubRenderer struct {
	last adapter.Sheet
}

func (r *stubRenderer) Render(sheet adapter.Sheet) ([]byte, error) {
	r.last = sheet
	return []byte{0x50, 0x4b}, nil
}

func (r *stubRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type settlementFixture struct {
	store    *memory.Store
	vendor   *entity.Vendor
	renderer *stubRenderer
	issue    *IssueSettlementUseCase
	get      *GetSettlementUseCase
	list     *ListSettlementsUseCase
	export   *ExportSettlementUseCase
	daily    *GetDailySheetUseCase
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()
	store := memory.NewStore()
	clock := valueobject.NewFixedClock(settlementNow)
	recorder := audit.NewRecorder(store.AuditLogs(), clock, "operator")
	renderer := &stubRenderer{}

	vendor := entity.NewVendor("Acme Mart", "", "010-1234-5678", settlementNow)
	require.NoError(t, store.Vendors().Create(context.Background(), vendor))

	get := NewGetSettlementUseCase(store.Settlements(), store.Vendors())
	return &settlementFixture{
		store:    store,
		vendor:   vendor,
		renderer: renderer,
		issue:    NewIssueSettlementUseCase(store.Settlements(), store.Vendors(), recorder, clock),
		get:      get,
		list:     NewListSettlementsUseCase(store.Settlements(), store.Vendors()),
		export:   NewExportSettlementUseCase(get, renderer),
		daily:    NewGetDailySheetUseCase(store.Transactions(), store.Vendors()),
	}
}

func (f *settlementFixture) sale(t *testing.T, dateKey, timeKey string, price, qty int64) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(dateKey, f.vendor.ID, "Rice 20kg", "bag",
		decimal.NewFromInt(price), decimal.NewFromInt(qty), timeKey, settlementNow)
	require.NoError(t, f.store.Transactions().Create(context.Background(), txn))
	return txn
}

func (f *settlementFixture) issueJanuary(t *testing.T) *entity.Settlement {
	t.Helper()
	out, err := f.issue.Execute(context.Background(), IssueSettlementInput{
		VendorID:      f.vendor.ID,
		IssueDateKey:  "2026-02-01",
		RangeStartKey: "2026-01-01",
		RangeEndKey:   "2026-01-31",
	})
	require.NoError(t, err)
	return out.Settlement
}

func TestIssueSettlement_SnapshotsInRangeRows(t *testing.T) {
	f := newSettlementFixture(t)
	late := f.sale(t, "2026-01-20", "15:00:00", 1000, 2)
	early := f.sale(t, "2026-01-05", "09:00:00", 500, 3)
	sameDay := f.sale(t, "2026-01-20", "08:00:00", 100, 1)
	f.sale(t, "2026-02-01", "09:00:00", 9999, 1)
	deleted := f.sale(t, "2026-01-10", "09:00:00", 7777, 1)
	require.NoError(t, f.store.Transactions().Delete(context.Background(), deleted.ID, settlementNow))

	s := f.issueJanuary(t)

	require.Len(t, s.Items, 3)
	assert.Equal(t, early.ID, s.Items[0].TransactionID)
	assert.Equal(t, sameDay.ID, s.Items[1].TransactionID)
	assert.Equal(t, late.ID, s.Items[2].TransactionID)
	assert.Equal(t, "3600", s.TotalAmount.String())
	assert.Equal(t, "2026-02-01", s.IssueDateKey)
	assert.Equal(t, "2026-01-01", s.RangeStartKey)
	assert.Equal(t, "2026-01-31", s.RangeEndKey)

	logs, err := f.store.AuditLogs().FindByFilter(context.Background(), adapter.AuditLogFilter{Action: string(entity.AuditActionIssue)}, adapter.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, s.ID, logs.Logs[0].EntityID)
	assert.Equal(t, entity.AuditEntitySettlement, logs.Logs[0].EntityType)
}

func TestIssueSettlement_EmptyRangeRejected(t *testing.T) {
	f := newSettlementFixture(t)
	f.sale(t, "2026-02-03", "09:00:00", 1000, 1)

	_, err := f.issue.Execute(context.Background(), IssueSettlementInput{
		VendorID:      f.vendor.ID,
		IssueDateKey:  "2026-01-01",
		RangeStartKey: "2026-01-01",
		RangeEndKey:   "2026-01-31",
	})

	var settlementErr *domainerror.SettlementError
	require.ErrorAs(t, err, &settlementErr)
	assert.Equal(t, domainerror.ErrCodeNoTransactionsInRange, settlementErr.Code)
	require.ErrorIs(t, err, domainerror.ErrNoTransactionsInRange)

	list, err := f.list.Execute(context.Background(), ListSettlementsInput{})
	require.NoError(t, err)
	assert.Zero(t, list.Total, "no settlement may be written")
}

func TestIssueSettlement_Validation(t *testing.T) {
	f := newSettlementFixture(t)

	tests := []struct {
		name    string
		input   IssueSettlementInput
		wantErr error
	}{
		{
			name:    "reversed range",
			input:   IssueSettlementInput{VendorID: f.vendor.ID, RangeStartKey: "2026-01-31", RangeEndKey: "2026-01-01"},
			wantErr: domainerror.ErrInvalidRange,
		},
		{
			name:    "missing end",
			input:   IssueSettlementInput{VendorID: f.vendor.ID, RangeStartKey: "2026-01-01"},
			wantErr: domainerror.ErrInvalidRange,
		},
		{
			name:    "malformed start",
			input:   IssueSettlementInput{VendorID: f.vendor.ID, RangeStartKey: "2026/01/01", RangeEndKey: "2026-01-31"},
			wantErr: domainerror.ErrInvalidDateKey,
		},
		{
			name:    "unknown vendor",
			input:   IssueSettlementInput{VendorID: valueobject.NewID(), RangeStartKey: "2026-01-01", RangeEndKey: "2026-01-31"},
			wantErr: domainerror.ErrVendorNotFoundForSettlement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.issue.Execute(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIssueSettlement_DefaultsIssueDateToToday(t *testing.T) {
	f := newSettlementFixture(t)
	f.sale(t, "2026-01-05", "09:00:00", 1000, 1)

	out, err := f.issue.Execute(context.Background(), IssueSettlementInput{
		VendorID:      f.vendor.ID,
		RangeStartKey: "2026-01-01",
		RangeEndKey:   "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-15", out.Settlement.IssueDateKey)
}

func TestIssueSettlement_SnapshotIsImmutable(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	edited := f.sale(t, "2026-01-05", "09:00:00", 1000, 2)
	removed := f.sale(t, "2026-01-06", "09:00:00", 500, 2)

	s := f.issueJanuary(t)

	edited.Qty = decimal.NewFromInt(50)
	edited.ProductName = "Changed"
	edited.RecomputeAmount()
	require.NoError(t, f.store.Transactions().Update(ctx, edited))
	require.NoError(t, f.store.Transactions().Delete(ctx, removed.ID, settlementNow))

	found, err := f.get.Execute(ctx, s.ID)
	require.NoError(t, err)

	require.Len(t, found.Settlement.Items, 2)
	assert.Equal(t, "Rice 20kg", found.Settlement.Items[0].ProductName)
	assert.Equal(t, "2", found.Settlement.Items[0].Qty.String())
	assert.Equal(t, "3000", found.Settlement.TotalAmount.String())
}

// Issuing is not exclusive: overlapping issues each snapshot the same rows.
func TestIssueSettlement_OverlappingIssuesBothSucceed(t *testing.T) {
	f := newSettlementFixture(t)
	txn := f.sale(t, "2026-01-05", "09:00:00", 1000, 1)

	first := f.issueJanuary(t)
	second := f.issueJanuary(t)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, txn.ID, first.Items[0].TransactionID)
	assert.Equal(t, txn.ID, second.Items[0].TransactionID)

	list, err := f.list.Execute(context.Background(), ListSettlementsInput{VendorID: f.vendor.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
}

func TestGetSettlement_ResolvesVendorAtReadTime(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	f.sale(t, "2026-01-05", "09:00:00", 1000, 1)
	s := f.issueJanuary(t)

	found, err := f.get.Execute(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Mart", found.VendorName)

	require.NoError(t, f.store.Vendors().Delete(ctx, f.vendor.ID, settlementNow))

	found, err = f.get.Execute(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeletedVendorLabel, found.VendorName)

	_, err = f.get.Execute(ctx, valueobject.NewID())
	require.ErrorIs(t, err, domainerror.ErrSettlementNotFound)
}

func TestListSettlements_IssueRangeFilter(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	f.sale(t, "2026-01-05", "09:00:00", 1000, 1)

	for _, issueDate := range []string{"2026-01-31", "2026-02-01", "2026-02-10"} {
		_, err := f.issue.Execute(ctx, IssueSettlementInput{
			VendorID:      f.vendor.ID,
			IssueDateKey:  issueDate,
			RangeStartKey: "2026-01-01",
			RangeEndKey:   "2026-01-31",
		})
		require.NoError(t, err)
	}

	out, err := f.list.Execute(ctx, ListSettlementsInput{IssueStartKey: "2026-02-01", IssueEndKey: "2026-02-28"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	for _, row := range out.Settlements {
		assert.Equal(t, "Acme Mart", row.VendorName)
		assert.Len(t, row.Settlement.Items, 1)
	}

	_, err = f.list.Execute(ctx, ListSettlementsInput{IssueStartKey: "2026-03-01", IssueEndKey: "2026-02-01"})
	require.ErrorIs(t, err, domainerror.ErrInvalidRange)
}

func TestExportSettlement_UsesSnapshot(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	txn := f.sale(t, "2026-01-05", "09:00:00", 1000, 2)
	s := f.issueJanuary(t)
	require.NoError(t, f.store.Transactions().Delete(ctx, txn.ID, settlementNow))

	out, err := f.export.Execute(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, "2000", out.TotalAmount.String())
	assert.Contains(t, out.FileName, s.ID)
	require.Len(t, f.renderer.last.Rows, 1)
	assert.Equal(t, "2026-01-05", f.renderer.last.Rows[0][0])
}

func TestDailySheet(t *testing.T) {
	f := newSettlementFixture(t)
	ctx := context.Background()
	second := f.sale(t, "2026-01-05", "11:00:00", 1000, 1)
	first := f.sale(t, "2026-01-05", "09:00:00", 500, 2)
	f.sale(t, "2026-01-06", "09:00:00", 700, 1)

	sheet, err := f.daily.Execute(ctx, DailySheetInput{VendorID: f.vendor.ID, DateKey: "2026-01-05"})
	require.NoError(t, err)

	require.Len(t, sheet.Transactions, 2)
	assert.Equal(t, first.ID, sheet.Transactions[0].ID)
	assert.Equal(t, second.ID, sheet.Transactions[1].ID)
	assert.Equal(t, "2000", sheet.TotalAmount.String())

	exporter := NewExportDailySheetUseCase(f.daily, f.renderer)
	out, err := exporter.Execute(ctx, DailySheetInput{VendorID: f.vendor.ID, DateKey: "2026-01-05"})
	require.NoError(t, err)
	assert.Equal(t, "2000", out.TotalAmount.String())
	assert.Equal(t, "2026-01-05", f.renderer.last.Name)
	assert.Len(t, f.renderer.last.Rows, 2)

	_, err = f.daily.Execute(ctx, DailySheetInput{VendorID: f.vendor.ID, DateKey: "yesterday"})
	require.ErrorIs(t, err, domainerror.ErrInvalidDateKey)
}

func TestGetPrintConfig(t *testing.T) {
	uc := NewGetPrintConfigUseCase(PrintConfig{CompanyName: "Acme Foods", BusinessNumber: "123-45-67890"})
	assert.Equal(t, "Acme Foods", uc.Execute().CompanyName)
}
