package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

func TestProductLifecycle(t *testing.T) {
	store := memory.NewStore()
	clock := valueobject.NewFixedClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	recorder := audit.NewRecorder(store.AuditLogs(), clock, "")
	ctx := context.Background()

	create := NewCreateProductUseCase(store.Products(), recorder, clock)
	update := NewUpdateProductUseCase(store.Products(), recorder, clock)
	remove := NewDeleteProductUseCase(store.Products(), recorder, clock)
	list := NewListProductsUseCase(store.Products())

	rice, err := create.Execute(ctx, CreateProductInput{Name: " Rice 20kg ", Unit: "bag"})
	require.NoError(t, err)
	assert.Equal(t, "Rice 20kg", rice.Name)

	_, err = create.Execute(ctx, CreateProductInput{Name: "Flour", Unit: "sack"})
	require.NoError(t, err)

	_, err = create.Execute(ctx, CreateProductInput{Name: ""})
	require.ErrorIs(t, err, domainerror.ErrInvalidProductName)

	unit := "box"
	updated, err := update.Execute(ctx, UpdateProductInput{ProductID: rice.ID, Unit: &unit})
	require.NoError(t, err)
	assert.Equal(t, "box", updated.Unit)

	_, err = update.Execute(ctx, UpdateProductInput{ProductID: rice.ID})
	require.ErrorIs(t, err, domainerror.ErrNoFieldsToUpdate)

	out, err := list.Execute(ctx, ListProductsInput{Keyword: "BOX"})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, rice.ID, out.Products[0].ID)

	require.NoError(t, remove.Execute(ctx, rice.ID))
	require.ErrorIs(t, remove.Execute(ctx, rice.ID), domainerror.ErrProductNotFound)

	out, err = list.Execute(ctx, ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)

	out, err = list.Execute(ctx, ListProductsInput{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
}
