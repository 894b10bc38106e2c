// Package model defines database models for persistence layer.
package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// VendorModel represents the vendors table in the database.
// The name is unique among rows that are not soft-deleted.
type VendorModel struct {
	ID                 string         `gorm:"type:varchar(24);primaryKey"`
	Name               string         `gorm:"type:varchar(120);not null;uniqueIndex:idx_vendors_active_name,where:deleted_at IS NULL"`
	RepresentativeName string         `gorm:"type:varchar(80);not null;default:'-'"`
	Phone              string         `gorm:"type:varchar(30);not null"`
	IsActive           bool           `gorm:"not null;default:true;index"`
	CreatedAt          time.Time      `gorm:"not null;index"`
	UpdatedAt          time.Time      `gorm:"not null"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the VendorModel.
func (VendorModel) TableName() string {
	return "vendors"
}

// ToEntity converts a VendorModel to a domain Vendor entity.
func (m *VendorModel) ToEntity() *entity.Vendor {
	return &entity.Vendor{
		ID:                 m.ID,
		Name:               m.Name,
		RepresentativeName: m.RepresentativeName,
		Phone:              m.Phone,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAtPtr(m.DeletedAt),
	}
}

// VendorFromEntity creates a VendorModel from a domain Vendor entity.
func VendorFromEntity(vendor *entity.Vendor) *VendorModel {
	return &VendorModel{
		ID:                 vendor.ID,
		Name:               vendor.Name,
		RepresentativeName: vendor.RepresentativeName,
		Phone:              vendor.Phone,
		IsActive:           vendor.IsActive,
		CreatedAt:          vendor.CreatedAt,
		UpdatedAt:          vendor.UpdatedAt,
		DeletedAt:          toDeletedAt(vendor.DeletedAt),
	}
}

func deletedAtPtr(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func toDeletedAt(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}
