// Package product contains product catalog use cases.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Field limits for product input.
const (
	MaxNameLength = 120
	MaxUnitLength = 50
)

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", domainerror.NewProductError(
			domainerror.ErrCodeInvalidProductName,
			"product name is required and must not exceed 120 characters",
			domainerror.ErrInvalidProductName,
		)
	}
	return name, nil
}

func normalizeUnit(unit string) (string, error) {
	unit = strings.TrimSpace(unit)
	if utf8.RuneCountInString(unit) > MaxUnitLength {
		return "", domainerror.NewProductError(
			domainerror.ErrCodeInvalidProductUnit,
			"product unit must not exceed 50 characters",
			domainerror.ErrInvalidProductUnit,
		)
	}
	return unit, nil
}

func productNotFound() error {
	return domainerror.NewProductError(
		domainerror.ErrCodeProductNotFound,
		"product not found",
		domainerror.ErrProductNotFound,
	)
}

// CreateProductInput represents the input for adding a catalog product.
type CreateProductInput struct {
	Name string
	Unit string
}

// CreateProductUseCase handles catalog additions.
type CreateProductUseCase struct {
	productRepo adapter.ProductRepository
	recorder    *audit.Recorder
	clock       valueobject.Clock
}

// NewCreateProductUseCase creates a new CreateProductUseCase instance.
func NewCreateProductUseCase(productRepo adapter.ProductRepository, recorder *audit.Recorder, clock valueobject.Clock) *CreateProductUseCase {
	return &CreateProductUseCase{productRepo: productRepo, recorder: recorder, clock: clock}
}

// Execute adds a product to the catalog.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	unit, err := normalizeUnit(input.Unit)
	if err != nil {
		return nil, err
	}

	product := entity.NewProduct(name, unit, uc.clock.Now())
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityProduct,
		EntityID:   product.ID,
		After:      product,
	})

	return product, nil
}

// UpdateProductInput represents the input for editing a catalog product.
type UpdateProductInput struct {
	ProductID string
	Name      *string
	Unit      *string
}

// UpdateProductUseCase handles catalog edits.
type UpdateProductUseCase struct {
	productRepo adapter.ProductRepository
	recorder    *audit.Recorder
	clock       valueobject.Clock
}

// NewUpdateProductUseCase creates a new UpdateProductUseCase instance.
func NewUpdateProductUseCase(productRepo adapter.ProductRepository, recorder *audit.Recorder, clock valueobject.Clock) *UpdateProductUseCase {
	return &UpdateProductUseCase{productRepo: productRepo, recorder: recorder, clock: clock}
}

// Execute applies a partial update. Existing transactions keep the name and
// unit they were entered with.
func (uc *UpdateProductUseCase) Execute(ctx context.Context, input UpdateProductInput) (*entity.Product, error) {
	id, err := valueobject.ParseID(input.ProductID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	if input.Name == nil && input.Unit == nil {
		return nil, domainerror.AsValidationError(domainerror.ErrNoFieldsToUpdate)
	}

	product, err := uc.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProductNotFound) {
			return nil, productNotFound()
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	before := *product

	if input.Name != nil {
		if product.Name, err = normalizeName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Unit != nil {
		if product.Unit, err = normalizeUnit(*input.Unit); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = uc.clock.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityProduct,
		EntityID:   product.ID,
		Before:     &before,
		After:      product,
	})

	return product, nil
}

// DeleteProductUseCase handles catalog removals.
type DeleteProductUseCase struct {
	productRepo adapter.ProductRepository
	recorder    *audit.Recorder
	clock       valueobject.Clock
}

// NewDeleteProductUseCase creates a new DeleteProductUseCase instance.
func NewDeleteProductUseCase(productRepo adapter.ProductRepository, recorder *audit.Recorder, clock valueobject.Clock) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo, recorder: recorder, clock: clock}
}

// Execute soft-deletes a product.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, productID string) error {
	id, err := valueobject.ParseID(productID)
	if err != nil {
		return domainerror.AsValidationError(err)
	}

	product, err := uc.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProductNotFound) {
			return productNotFound()
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	now := uc.clock.Now()
	if err := uc.productRepo.Delete(ctx, id, now); err != nil {
		if errors.Is(err, domainerror.ErrProductNotFound) {
			return productNotFound()
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	after := *product
	after.DeletedAt = &now
	after.UpdatedAt = now

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionDelete,
		EntityType: entity.AuditEntityProduct,
		EntityID:   product.ID,
		Before:     product,
		After:      &after,
	})

	return nil
}

// ListProductsInput represents the input for listing products.
type ListProductsInput struct {
	Keyword        string
	IncludeDeleted bool
	Page           int
	Limit          int
}

// ListProductsOutput represents the output of listing products.
type ListProductsOutput struct {
	Products   []*entity.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListProductsUseCase handles catalog listing.
type ListProductsUseCase struct {
	productRepo adapter.ProductRepository
}

// NewListProductsUseCase creates a new ListProductsUseCase instance.
func NewListProductsUseCase(productRepo adapter.ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// Execute lists products newest first.
func (uc *ListProductsUseCase) Execute(ctx context.Context, input ListProductsInput) (*ListProductsOutput, error) {
	pagination := adapter.NewPagination(input.Page, input.Limit)

	result, err := uc.productRepo.FindByFilter(ctx, adapter.ProductFilter{
		Keyword:        strings.TrimSpace(input.Keyword),
		IncludeDeleted: input.IncludeDeleted,
	}, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListProductsOutput{
		Products:   result.Products,
		Total:      result.Total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages(result.Total),
	}, nil
}
