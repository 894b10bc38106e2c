package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/model"
)

const (
	newestFirstOrder = "date_key DESC, registered_time_kst DESC, created_at DESC, id DESC"
	oldestFirstOrder = "date_key ASC, registered_time_kst ASC, created_at ASC, id ASC"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindActiveByID retrieves a non-deleted transaction by its ID.
func (r *transactionRepository) FindActiveByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}

	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.ProductName != "" {
		query = query.Where("product_name = ?", filter.ProductName)
	}
	if filter.Range != nil {
		query = query.Where("date_key BETWEEN ? AND ?", filter.Range.StartKey, filter.Range.EndKey)
	}
	if filter.Keyword != "" {
		pattern := containsPattern(filter.Keyword)
		if len(filter.KeywordVendors) > 0 {
			query = query.Where(
				`(LOWER(product_name) LIKE ? ESCAPE '\' OR LOWER(product_unit) LIKE ? ESCAPE '\' OR vendor_id IN ?)`,
				pattern, pattern, filter.KeywordVendors,
			)
		} else {
			query = query.Where(`(LOWER(product_name) LIKE ? ESCAPE '\' OR LOWER(product_unit) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
	}

	return query
}

// FindByFilter retrieves transactions newest first with pagination and a period total.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// The total covers every filtered row, not just this page
	var periodTotal decimal.NullDecimal
	if err := query.Session(&gorm.Session{}).Select("SUM(amount)").Row().Scan(&periodTotal); err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	if err := paginate(query.Order(newestFirstOrder), pagination).Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	return &adapter.TransactionListResult{
		Transactions: toTransactions(transactionModels),
		Total:        total,
		PeriodTotal:  periodTotal.Decimal.Round(valueobject.AmountPlaces),
	}, nil
}

// FindAllByFilter retrieves every matching transaction newest first.
func (r *transactionRepository) FindAllByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	if err := r.filtered(ctx, filter).Order(newestFirstOrder).Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return toTransactions(transactionModels), nil
}

// FindActiveByVendor retrieves all non-deleted transactions for a vendor.
func (r *transactionRepository) FindActiveByVendor(ctx context.Context, vendorID string) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order(oldestFirstOrder).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactions(transactionModels), nil
}

// FindActiveByVendorAndDate retrieves one vendor's non-deleted rows for a day.
func (r *transactionRepository) FindActiveByVendorAndDate(ctx context.Context, vendorID string, dateKey string) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("vendor_id = ? AND date_key = ?", vendorID, dateKey).
		Order("registered_time_kst ASC, created_at ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactions(transactionModels), nil
}

// SumByVendors sums non-deleted amounts per vendor within a date range.
func (r *transactionRepository) SumByVendors(ctx context.Context, vendorIDs []string, period valueobject.DateRange) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal, len(vendorIDs))
	if len(vendorIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		VendorID string
		Total    decimal.NullDecimal
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("vendor_id, SUM(amount) AS total").
		Where("vendor_id IN ?", vendorIDs).
		Where("date_key BETWEEN ? AND ?", period.StartKey, period.EndKey).
		Group("vendor_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		sums[row.VendorID] = row.Total.Decimal.Round(valueobject.AmountPlaces)
	}
	return sums, nil
}

// Update updates an existing active transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Select("date_key", "vendor_id", "product_name", "product_unit", "unit_price", "qty", "amount", "registered_time_kst", "updated_at").
		Updates(model.TransactionFromEntity(transaction))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"deleted_at": deletedAt, "updated_at": deletedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func toTransactions(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
