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

// vendorRepository implements the adapter.VendorRepository interface.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance.
func NewVendorRepository(db *gorm.DB) adapter.VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

// Create creates a new vendor in the database.
func (r *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	result := r.db.WithContext(ctx).Create(model.VendorFromEntity(vendor))
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrVendorNameTaken
		}
		return result.Error
	}
	return nil
}

// FindActiveByID retrieves a non-deleted vendor by its ID.
func (r *vendorRepository) FindActiveByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var vendorModel model.VendorModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&vendorModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrVendorNotFound
		}
		return nil, result.Error
	}
	return vendorModel.ToEntity(), nil
}

// FindByIDs retrieves vendors by ID, including soft-deleted ones.
func (r *vendorRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Vendor, error) {
	vendors := make(map[string]*entity.Vendor, len(ids))
	if len(ids) == 0 {
		return vendors, nil
	}

	var vendorModels []model.VendorModel
	result := r.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&vendorModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range vendorModels {
		vendors[vendorModels[i].ID] = vendorModels[i].ToEntity()
	}
	return vendors, nil
}

// FindIDsByName returns the IDs of vendors whose name contains keyword.
func (r *vendorRepository) FindIDsByName(ctx context.Context, keyword string) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.VendorModel{}).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(keyword)).
		Order("id ASC").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// ExistsByName reports whether another active vendor uses name.
func (r *vendorRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.VendorModel{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByFilter retrieves vendors newest first with pagination.
func (r *vendorRepository) FindByFilter(ctx context.Context, filter adapter.VendorFilter, pagination adapter.Pagination) (*adapter.VendorListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.VendorModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Keyword != "" {
		pattern := containsPattern(filter.Keyword)
		query = query.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(representative_name) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var activeCount int64
	if err := r.db.WithContext(ctx).Model(&model.VendorModel{}).Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
		return nil, err
	}

	var vendorModels []model.VendorModel
	result := paginate(query.Order("created_at DESC, id DESC"), pagination).Find(&vendorModels)
	if result.Error != nil {
		return nil, result.Error
	}

	vendors := make([]*entity.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = vendorModels[i].ToEntity()
	}

	return &adapter.VendorListResult{
		Vendors:     vendors,
		Total:       total,
		ActiveCount: activeCount,
	}, nil
}

// Update updates an existing active vendor in the database.
func (r *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	vendorModel := model.VendorFromEntity(vendor)
	result := r.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", vendor.ID).
		Select("name", "representative_name", "phone", "is_active", "updated_at").
		Updates(vendorModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrVendorNameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrVendorNotFound
	}
	return nil
}

// Delete soft-deletes a vendor.
func (r *vendorRepository) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"deleted_at": deletedAt, "updated_at": deletedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrVendorNotFound
	}
	return nil
}
