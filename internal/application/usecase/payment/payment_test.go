package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

func TestPayments(t *testing.T) {
	now := time.Date(2026, 2, 12, 16, 0, 0, 0, time.UTC) // 2026-02-13 01:00 KST
	store := memory.NewStore()
	clock := valueobject.NewFixedClock(now)
	recorder := audit.NewRecorder(store.AuditLogs(), clock, "operator")
	ctx := context.Background()

	vendor := entity.NewVendor("Acme", "", "010-1234-5678", now)
	require.NoError(t, store.Vendors().Create(ctx, vendor))

	create := NewCreatePaymentUseCase(store.Payments(), store.Vendors(), recorder, clock)
	list := NewListPaymentsUseCase(store.Payments(), store.Vendors())

	t.Run("defaults date key to today in KST", func(t *testing.T) {
		p, err := create.Execute(ctx, CreatePaymentInput{VendorID: vendor.ID, Amount: decimal.NewFromInt(2000)})
		require.NoError(t, err)
		assert.Equal(t, "2026-02-13", p.DateKey)
		assert.Equal(t, "2000", p.Amount.String())
	})

	t.Run("rejects amounts that round to zero or below", func(t *testing.T) {
		for _, amount := range []string{"0", "-500", "0.001", "0.0049"} {
			_, err := create.Execute(ctx, CreatePaymentInput{VendorID: vendor.ID, Amount: decimal.RequireFromString(amount)})
			require.ErrorIs(t, err, domainerror.ErrInvalidPaymentAmount, amount)
		}
	})

	t.Run("rejects unknown vendor", func(t *testing.T) {
		_, err := create.Execute(ctx, CreatePaymentInput{VendorID: valueobject.NewID(), Amount: decimal.NewFromInt(1)})
		require.ErrorIs(t, err, domainerror.ErrVendorNotFoundForPayment)
	})

	t.Run("lists newest date first", func(t *testing.T) {
		_, err := create.Execute(ctx, CreatePaymentInput{VendorID: vendor.ID, DateKey: "2026-01-31", Amount: decimal.NewFromInt(300)})
		require.NoError(t, err)

		payments, err := list.Execute(ctx, vendor.ID)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, "2026-02-13", payments[0].DateKey)
		assert.Equal(t, "2026-01-31", payments[1].DateKey)
	})
}

func TestCreatePayment_StoresRoundedAmount(t *testing.T) {
	now := time.Date(2026, 2, 12, 16, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	clock := valueobject.NewFixedClock(now)
	ctx := context.Background()

	vendor := entity.NewVendor("Acme", "", "010-1234-5678", now)
	require.NoError(t, store.Vendors().Create(ctx, vendor))

	create := NewCreatePaymentUseCase(store.Payments(), store.Vendors(), audit.NewRecorder(store.AuditLogs(), clock, "operator"), clock)

	p, err := create.Execute(ctx, CreatePaymentInput{VendorID: vendor.ID, Amount: decimal.RequireFromString("0.005")})
	require.NoError(t, err)
	assert.Equal(t, "0.01", p.Amount.String())

	stored, err := store.Payments().FindByVendor(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Amount.IsPositive())
}
