package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/model"
)

// settlementRepository implements the adapter.SettlementRepository interface.
type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository instance.
func NewSettlementRepository(db *gorm.DB) adapter.SettlementRepository {
	return &settlementRepository{
		db: db,
	}
}

// Issue reads the candidate rows and inserts the built settlement in one
// database transaction. An error from build rolls the transaction back.
func (r *settlementRepository) Issue(ctx context.Context, vendorID string, period valueobject.DateRange, build adapter.SettlementBuilder) (*entity.Settlement, error) {
	var settlement *entity.Settlement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactionModels []model.TransactionModel
		result := tx.
			Where("vendor_id = ?", vendorID).
			Where("date_key BETWEEN ? AND ?", period.StartKey, period.EndKey).
			Order("date_key ASC, registered_time_kst ASC, created_at ASC, id ASC").
			Find(&transactionModels)
		if result.Error != nil {
			return result.Error
		}

		built, err := build(toTransactions(transactionModels))
		if err != nil {
			return err
		}

		settlementModel, err := model.SettlementFromEntity(built)
		if err != nil {
			return err
		}
		if err := tx.Create(settlementModel).Error; err != nil {
			return err
		}

		settlement = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	return settlement, nil
}

// FindByID retrieves a settlement by its ID.
func (r *settlementRepository) FindByID(ctx context.Context, id string) (*entity.Settlement, error) {
	var settlementModel model.SettlementModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&settlementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettlementNotFound
		}
		return nil, result.Error
	}
	return settlementModel.ToEntity()
}

// FindByFilter retrieves settlements newest first with pagination.
func (r *settlementRepository) FindByFilter(ctx context.Context, filter adapter.SettlementFilter, pagination adapter.Pagination) (*adapter.SettlementListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.SettlementModel{})
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.IssueRange != nil {
		query = query.Where("issue_date_key BETWEEN ? AND ?", filter.IssueRange.StartKey, filter.IssueRange.EndKey)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var settlementModels []model.SettlementModel
	if err := paginate(query.Order("created_at DESC, id DESC"), pagination).Find(&settlementModels).Error; err != nil {
		return nil, err
	}

	settlements := make([]*entity.Settlement, len(settlementModels))
	for i := range settlementModels {
		settlement, err := settlementModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		settlements[i] = settlement
	}

	return &adapter.SettlementListResult{
		Settlements: settlements,
		Total:       total,
	}, nil
}
