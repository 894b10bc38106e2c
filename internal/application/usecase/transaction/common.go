// Package transaction contains transaction ledger use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Field limits for transaction input.
const (
	MaxProductNameLength = 200
	MaxProductUnitLength = 50
)

// FilterInput carries the raw list/export filter parameters.
type FilterInput struct {
	VendorID       string
	ProductName    string
	Keyword        string
	StartKey       string
	EndKey         string
	Preset         string
	IncludeDeleted bool
}

func normalizeProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxProductNameLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTxnProductName,
			"product name is required and must not exceed 200 characters",
			domainerror.ErrInvalidProductNameForTransaction,
		)
	}
	return name, nil
}

func normalizeProductUnit(unit string) (string, error) {
	unit = strings.TrimSpace(unit)
	if utf8.RuneCountInString(unit) > MaxProductUnitLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTxnProductUnit,
			"product unit must not exceed 50 characters",
			domainerror.ErrInvalidProductUnitForTransaction,
		)
	}
	return unit, nil
}

func validateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidUnitPrice,
			"unit price must be zero or greater",
			domainerror.ErrInvalidUnitPrice,
		)
	}
	if !valueobject.FitsQuantityScale(price) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidUnitPrice,
			"unit price must not have more than 4 decimal places",
			domainerror.ErrInvalidUnitPrice,
		)
	}
	return nil
}

func validateQty(qty decimal.Decimal) error {
	if !valueobject.FitsQuantityScale(qty) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidQty,
			"quantity must not have more than 4 decimal places",
			domainerror.ErrInvalidQty,
		)
	}
	return nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func vendorNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTxnVendorNotFound,
		"vendor not found",
		domainerror.ErrVendorNotFoundForTransaction,
	)
}

// resolveFilter validates filter input and expands the keyword to matching vendors.
func resolveFilter(ctx context.Context, vendorRepo adapter.VendorRepository, clock valueobject.Clock, input FilterInput) (adapter.TransactionFilter, error) {
	filter := adapter.TransactionFilter{
		ProductName:    strings.TrimSpace(input.ProductName),
		Keyword:        strings.TrimSpace(input.Keyword),
		IncludeDeleted: input.IncludeDeleted,
	}

	if input.VendorID != "" {
		id, err := valueobject.ParseID(input.VendorID)
		if err != nil {
			return filter, domainerror.AsValidationError(err)
		}
		filter.VendorID = id
	}

	period, err := resolveRange(input.StartKey, input.EndKey, input.Preset, clock)
	if err != nil {
		return filter, err
	}
	filter.Range = period

	if filter.Keyword != "" {
		ids, err := vendorRepo.FindIDsByName(ctx, filter.Keyword)
		if err != nil {
			return filter, fmt.Errorf("failed to match vendors by keyword: %w", err)
		}
		filter.KeywordVendors = ids
	}

	return filter, nil
}

// resolveRange applies a preset only when no explicit bound is given.
func resolveRange(startKey, endKey, preset string, clock valueobject.Clock) (*valueobject.DateRange, error) {
	if preset != "" && startKey == "" && endKey == "" {
		p, err := valueobject.ParseRangePreset(preset)
		if err != nil {
			return nil, domainerror.AsValidationError(err)
		}
		r := valueobject.RangeByPreset(p, clock.Now())
		return &r, nil
	}

	period, err := valueobject.NormalizeRange(startKey, endKey)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	return period, nil
}

// withVendorNames joins rows to vendor display names, including tombstoned vendors.
func withVendorNames(ctx context.Context, vendorRepo adapter.VendorRepository, rows []*entity.Transaction) ([]*entity.TransactionWithVendor, error) {
	ids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, t := range rows {
		if _, ok := seen[t.VendorID]; !ok {
			seen[t.VendorID] = struct{}{}
			ids = append(ids, t.VendorID)
		}
	}

	vendors := map[string]*entity.Vendor{}
	if len(ids) > 0 {
		var err error
		vendors, err = vendorRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vendor names: %w", err)
		}
	}

	out := make([]*entity.TransactionWithVendor, len(rows))
	for i, t := range rows {
		out[i] = &entity.TransactionWithVendor{
			Transaction: t,
			VendorName:  vendors[t.VendorID].DisplayName(),
		}
	}
	return out, nil
}
