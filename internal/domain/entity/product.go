package entity

import (
	"time"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Product is a catalog entry offered for autocomplete. Transactions copy its
// name and unit at entry time instead of referencing it.
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Unit      string     `json:"unit"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewProduct creates a new Product entity.
func NewProduct(name, unit string, now time.Time) *Product {
	return &Product{
		ID:        valueobject.NewID(),
		Name:      name,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
