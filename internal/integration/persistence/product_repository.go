package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/model"
)

// productRepository implements the adapter.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) adapter.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(model.ProductFromEntity(product)).Error
}

// FindActiveByID retrieves a non-deleted product by its ID.
func (r *productRepository) FindActiveByID(ctx context.Context, id string) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProductNotFound
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// FindByFilter retrieves products newest first with pagination.
func (r *productRepository) FindByFilter(ctx context.Context, filter adapter.ProductFilter, pagination adapter.Pagination) (*adapter.ProductListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Keyword != "" {
		pattern := containsPattern(filter.Keyword)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(unit) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var productModels []model.ProductModel
	if err := paginate(query.Order("created_at DESC, id DESC"), pagination).Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToEntity()
	}

	return &adapter.ProductListResult{
		Products: products,
		Total:    total,
	}, nil
}

// Update updates an existing active product in the database.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("name", "unit", "updated_at").
		Updates(model.ProductFromEntity(product))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}

// Delete soft-deletes a product.
func (r *productRepository) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"deleted_at": deletedAt, "updated_at": deletedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}
