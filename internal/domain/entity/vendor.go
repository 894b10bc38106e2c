// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// DeletedVendorLabel is shown wherever a soft-deleted vendor's name is resolved.
const DeletedVendorLabel = "(deleted vendor)"

// DefaultRepresentativeName is stored when no representative is given.
const DefaultRepresentativeName = "-"

// Vendor represents a customer the business sells to.
type Vendor struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	RepresentativeName string     `json:"representative_name"`
	Phone              string     `json:"phone"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

// NewVendor creates a new active Vendor entity.
func NewVendor(name, representativeName, phone string, now time.Time) *Vendor {
	if representativeName == "" {
		representativeName = DefaultRepresentativeName
	}

	return &Vendor{
		ID:                 valueobject.NewID(),
		Name:               name,
		RepresentativeName: representativeName,
		Phone:              phone,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsDeleted reports whether the vendor has been tombstoned.
func (v *Vendor) IsDeleted() bool {
	return v.DeletedAt != nil
}

// DisplayName returns the vendor name, or the deleted label for tombstoned or missing vendors.
func (v *Vendor) DisplayName() string {
	if v == nil || v.IsDeleted() {
		return DeletedVendorLabel
	}
	return v.Name
}

// VendorWithMonthlyAmount pairs a vendor with its current-month sales total.
type VendorWithMonthlyAmount struct {
	Vendor          *Vendor
	ThisMonthAmount decimal.Decimal
}
