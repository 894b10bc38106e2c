// Package memory provides an in-process implementation of the ledger
// repositories. It backs DATABASE_DRIVER=memory and the use case tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Store holds every ledger collection behind a single lock.
type Store struct {
	mu           sync.RWMutex
	vendors      map[string]entity.Vendor
	products     map[string]entity.Product
	transactions map[string]entity.Transaction
	payments     map[string]entity.Payment
	settlements  map[string]entity.Settlement
	auditLogs    []entity.AuditLog

	// FailAudit makes every audit write fail when set.
	FailAudit error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		vendors:      make(map[string]entity.Vendor),
		products:     make(map[string]entity.Product),
		transactions: make(map[string]entity.Transaction),
		payments:     make(map[string]entity.Payment),
		settlements:  make(map[string]entity.Settlement),
	}
}

// Vendors returns the vendor repository view.
func (s *Store) Vendors() adapter.VendorRepository { return &vendorRepository{s} }

// Products returns the product repository view.
func (s *Store) Products() adapter.ProductRepository { return &productRepository{s} }

// Transactions returns the transaction repository view.
func (s *Store) Transactions() adapter.TransactionRepository { return &transactionRepository{s} }

// Payments returns the payment repository view.
func (s *Store) Payments() adapter.PaymentRepository { return &paymentRepository{s} }

// Settlements returns the settlement repository view.
func (s *Store) Settlements() adapter.SettlementRepository { return &settlementRepository{s} }

// AuditLogs returns the audit log repository view.
func (s *Store) AuditLogs() adapter.AuditLogRepository { return &auditLogRepository{s} }

func containsFold(value, keyword string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(keyword))
}

func page[T any](rows []T, pagination adapter.Pagination) []T {
	start := pagination.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+pagination.Limit, len(rows))
	return rows[start:end]
}

func stamp(t time.Time) *time.Time {
	return &t
}

// Vendors

type vendorRepository struct{ s *Store }

func (r *vendorRepository) Create(_ context.Context, vendor *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.vendors[vendor.ID] = *vendor
	return nil
}

func (r *vendorRepository) FindActiveByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vendors[id]
	if !ok || v.DeletedAt != nil {
		return nil, domainerror.ErrVendorNotFound
	}
	return &v, nil
}

func (r *vendorRepository) FindByIDs(_ context.Context, ids []string) (map[string]*entity.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Vendor, len(ids))
	for _, id := range ids {
		if v, ok := r.s.vendors[id]; ok {
			out[id] = &v
		}
	}
	return out, nil
}

func (r *vendorRepository) FindIDsByName(_ context.Context, keyword string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for id, v := range r.s.vendors {
		if containsFold(v.Name, keyword) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *vendorRepository) ExistsByName(_ context.Context, name string, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, v := range r.s.vendors {
		if id != excludeID && v.DeletedAt == nil && v.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *vendorRepository) FindByFilter(_ context.Context, filter adapter.VendorFilter, pagination adapter.Pagination) (*adapter.VendorListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*entity.Vendor
	var active int64
	for _, v := range r.s.vendors {
		if v.DeletedAt == nil && v.IsActive {
			active++
		}
		if !filter.IncludeDeleted && v.DeletedAt != nil {
			continue
		}
		if filter.Keyword != "" &&
			!containsFold(v.Name, filter.Keyword) &&
			!containsFold(v.RepresentativeName, filter.Keyword) &&
			!containsFold(v.Phone, filter.Keyword) {
			continue
		}
		rows = append(rows, &v)
	}

	slices.SortFunc(rows, func(a, b *entity.Vendor) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
	})

	return &adapter.VendorListResult{
		Vendors:     page(rows, pagination),
		Total:       int64(len(rows)),
		ActiveCount: active,
	}, nil
}

func (r *vendorRepository) Update(_ context.Context, vendor *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vendors[vendor.ID]; !ok {
		return domainerror.ErrVendorNotFound
	}
	r.s.vendors[vendor.ID] = *vendor
	return nil
}

func (r *vendorRepository) Delete(_ context.Context, id string, deletedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendors[id]
	if !ok || v.DeletedAt != nil {
		return domainerror.ErrVendorNotFound
	}
	v.DeletedAt = stamp(deletedAt)
	v.UpdatedAt = deletedAt
	r.s.vendors[id] = v
	return nil
}

// Products

type productRepository struct{ s *Store }

func (r *productRepository) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepository) FindActiveByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, domainerror.ErrProductNotFound
	}
	return &p, nil
}

func (r *productRepository) FindByFilter(_ context.Context, filter adapter.ProductFilter, pagination adapter.Pagination) (*adapter.ProductListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*entity.Product
	for _, p := range r.s.products {
		if !filter.IncludeDeleted && p.DeletedAt != nil {
			continue
		}
		if filter.Keyword != "" && !containsFold(p.Name, filter.Keyword) && !containsFold(p.Unit, filter.Keyword) {
			continue
		}
		rows = append(rows, &p)
	}

	slices.SortFunc(rows, func(a, b *entity.Product) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
	})

	return &adapter.ProductListResult{
		Products: page(rows, pagination),
		Total:    int64(len(rows)),
	}, nil
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domainerror.ErrProductNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepository) Delete(_ context.Context, id string, deletedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return domainerror.ErrProductNotFound
	}
	p.DeletedAt = stamp(deletedAt)
	p.UpdatedAt = deletedAt
	r.s.products[id] = p
	return nil
}

// Transactions

type transactionRepository struct{ s *Store }

func newestFirst(a, b *entity.Transaction) int {
	return cmp.Or(
		strings.Compare(b.DateKey, a.DateKey),
		strings.Compare(b.RegisteredTimeKST, a.RegisteredTimeKST),
		b.CreatedAt.Compare(a.CreatedAt),
		strings.Compare(b.ID, a.ID),
	)
}

func oldestFirst(a, b *entity.Transaction) int {
	return newestFirst(b, a)
}

func (r *transactionRepository) matches(t *entity.Transaction, filter adapter.TransactionFilter) bool {
	if !filter.IncludeDeleted && t.DeletedAt != nil {
		return false
	}
	if filter.VendorID != "" && t.VendorID != filter.VendorID {
		return false
	}
	if filter.ProductName != "" && t.ProductName != filter.ProductName {
		return false
	}
	if filter.Range != nil && !filter.Range.Contains(t.DateKey) {
		return false
	}
	if filter.Keyword != "" &&
		!containsFold(t.ProductName, filter.Keyword) &&
		!containsFold(t.ProductUnit, filter.Keyword) &&
		!slices.Contains(filter.KeywordVendors, t.VendorID) {
		return false
	}
	return true
}

func (r *transactionRepository) collect(keep func(*entity.Transaction) bool, order func(a, b *entity.Transaction) int) []*entity.Transaction {
	var rows []*entity.Transaction
	for _, t := range r.s.transactions {
		if keep(&t) {
			rows = append(rows, &t)
		}
	}
	slices.SortFunc(rows, order)
	return rows
}

func (r *transactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[transaction.ID] = *transaction
	return nil
}

func (r *transactionRepository) FindActiveByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok || t.DeletedAt != nil {
		return nil, domainerror.ErrTransactionNotFound
	}
	return &t, nil
}

func (r *transactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.collect(func(t *entity.Transaction) bool { return r.matches(t, filter) }, newestFirst)
	total := decimal.Zero
	for _, t := range rows {
		total = total.Add(t.Amount)
	}

	return &adapter.TransactionListResult{
		Transactions: page(rows, pagination),
		Total:        int64(len(rows)),
		PeriodTotal:  total.Round(valueobject.AmountPlaces),
	}, nil
}

func (r *transactionRepository) FindAllByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(t *entity.Transaction) bool { return r.matches(t, filter) }, newestFirst), nil
}

func (r *transactionRepository) FindActiveByVendor(_ context.Context, vendorID string) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(t *entity.Transaction) bool {
		return t.DeletedAt == nil && t.VendorID == vendorID
	}, oldestFirst), nil
}

func (r *transactionRepository) FindActiveByVendorAndDate(_ context.Context, vendorID string, dateKey string) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(t *entity.Transaction) bool {
		return t.DeletedAt == nil && t.VendorID == vendorID && t.DateKey == dateKey
	}, oldestFirst), nil
}

func (r *transactionRepository) SumByVendors(_ context.Context, vendorIDs []string, period valueobject.DateRange) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := make(map[string]decimal.Decimal, len(vendorIDs))
	for _, t := range r.s.transactions {
		if t.DeletedAt != nil || !period.Contains(t.DateKey) || !slices.Contains(vendorIDs, t.VendorID) {
			continue
		}
		sums[t.VendorID] = sums[t.VendorID].Add(t.Amount)
	}
	return sums, nil
}

func (r *transactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	r.s.transactions[transaction.ID] = *transaction
	return nil
}

func (r *transactionRepository) Delete(_ context.Context, id string, deletedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.DeletedAt != nil {
		return domainerror.ErrTransactionNotFound
	}
	t.DeletedAt = stamp(deletedAt)
	t.UpdatedAt = deletedAt
	r.s.transactions[id] = t
	return nil
}

// Payments

type paymentRepository struct{ s *Store }

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *paymentRepository) FindByVendor(_ context.Context, vendorID string) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.Payment
	for _, p := range r.s.payments {
		if p.VendorID == vendorID {
			rows = append(rows, &p)
		}
	}
	slices.SortFunc(rows, func(a, b *entity.Payment) int {
		return cmp.Or(strings.Compare(b.DateKey, a.DateKey), b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
	})
	return rows, nil
}

// Settlements

type settlementRepository struct{ s *Store }

func (r *settlementRepository) Issue(_ context.Context, vendorID string, period valueobject.DateRange, build adapter.SettlementBuilder) (*entity.Settlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	txns := (&transactionRepository{r.s}).collect(func(t *entity.Transaction) bool {
		return t.DeletedAt == nil && t.VendorID == vendorID && period.Contains(t.DateKey)
	}, oldestFirst)

	settlement, err := build(txns)
	if err != nil {
		return nil, err
	}

	stored := *settlement
	stored.Items = slices.Clone(settlement.Items)
	r.s.settlements[settlement.ID] = stored
	return settlement, nil
}

func (r *settlementRepository) FindByID(_ context.Context, id string) (*entity.Settlement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.settlements[id]
	if !ok {
		return nil, domainerror.ErrSettlementNotFound
	}
	st.Items = slices.Clone(st.Items)
	return &st, nil
}

func (r *settlementRepository) FindByFilter(_ context.Context, filter adapter.SettlementFilter, pagination adapter.Pagination) (*adapter.SettlementListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*entity.Settlement
	for _, st := range r.s.settlements {
		if filter.VendorID != "" && st.VendorID != filter.VendorID {
			continue
		}
		if filter.IssueRange != nil && !filter.IssueRange.Contains(st.IssueDateKey) {
			continue
		}
		st.Items = slices.Clone(st.Items)
		rows = append(rows, &st)
	}

	slices.SortFunc(rows, func(a, b *entity.Settlement) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
	})

	return &adapter.SettlementListResult{
		Settlements: page(rows, pagination),
		Total:       int64(len(rows)),
	}, nil
}

// Audit logs

type auditLogRepository struct{ s *Store }

func (r *auditLogRepository) Record(_ context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAudit != nil {
		return r.s.FailAudit
	}
	r.s.auditLogs = append(r.s.auditLogs, *log)
	return nil
}

func (r *auditLogRepository) CreateBatch(ctx context.Context, logs []*entity.AuditLog) error {
	for _, log := range logs {
		if err := r.Record(ctx, log); err != nil {
			return err
		}
	}
	return nil
}

func (r *auditLogRepository) FindByFilter(_ context.Context, filter adapter.AuditLogFilter, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*entity.AuditLog
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		log := r.s.auditLogs[i]
		if filter.EntityType != "" && string(log.EntityType) != filter.EntityType {
			continue
		}
		if filter.Action != "" && string(log.Action) != filter.Action {
			continue
		}
		rows = append(rows, &log)
	}

	slices.SortStableFunc(rows, func(a, b *entity.AuditLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return &adapter.AuditLogListResult{
		Logs:  page(rows, pagination),
		Total: int64(len(rows)),
	}, nil
}
