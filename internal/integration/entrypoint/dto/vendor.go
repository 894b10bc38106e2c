package dto

import (
	"cmp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/usecase/statement"
	"github.com/ledger-backoffice/backend/internal/application/usecase/vendor"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// CreateVendorRequest represents the request body for vendor creation.
// vendorName/companyName, representative/ownerName and contact/tel are
// accepted as aliases of name, representative_name and phone.
type CreateVendorRequest struct {
	Name               string `json:"name"`
	VendorName         string `json:"vendorName"`
	CompanyName        string `json:"companyName"`
	RepresentativeName string `json:"representative_name"`
	Representative     string `json:"representative"`
	OwnerName          string `json:"ownerName"`
	Phone              string `json:"phone"`
	Contact            string `json:"contact"`
	Tel                string `json:"tel"`
}

// ToInput resolves aliases into the use case input.
func (r CreateVendorRequest) ToInput() vendor.CreateVendorInput {
	return vendor.CreateVendorInput{
		Name:               cmp.Or(r.Name, r.VendorName, r.CompanyName),
		RepresentativeName: cmp.Or(r.RepresentativeName, r.Representative, r.OwnerName),
		Phone:              cmp.Or(r.Phone, r.Contact, r.Tel),
	}
}

// UpdateVendorRequest represents the request body for vendor update.
type UpdateVendorRequest struct {
	Name               *string `json:"name"`
	VendorName         *string `json:"vendorName"`
	CompanyName        *string `json:"companyName"`
	RepresentativeName *string `json:"representative_name"`
	Representative     *string `json:"representative"`
	OwnerName          *string `json:"ownerName"`
	Phone              *string `json:"phone"`
	Contact            *string `json:"contact"`
	Tel                *string `json:"tel"`
	IsActive           *bool   `json:"is_active"`
}

// ToInput resolves aliases into the use case input.
func (r UpdateVendorRequest) ToInput(vendorID string) vendor.UpdateVendorInput {
	return vendor.UpdateVendorInput{
		VendorID:           vendorID,
		Name:               firstSet(r.Name, r.VendorName, r.CompanyName),
		RepresentativeName: firstSet(r.RepresentativeName, r.Representative, r.OwnerName),
		Phone:              firstSet(r.Phone, r.Contact, r.Tel),
		IsActive:           r.IsActive,
	}
}

// ListVendorsQuery represents the query parameters for listing vendors.
type ListVendorsQuery struct {
	PageQuery
	Keyword        string `form:"keyword"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// VendorResponse represents a single vendor in API responses.
type VendorResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	RepresentativeName string           `json:"representative_name"`
	Phone              string           `json:"phone"`
	IsActive           bool             `json:"is_active"`
	ThisMonthAmount    *decimal.Decimal `json:"this_month_amount,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          *time.Time       `json:"deleted_at,omitempty"`
}

// VendorListMeta extends pagination with the active vendor count.
type VendorListMeta struct {
	PaginationMeta
	ActiveCount int64 `json:"active_count"`
}

// VendorListResponse represents the response for listing vendors.
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
	Meta    VendorListMeta   `json:"meta"`
}

// ToVendorResponse converts a domain Vendor entity to a VendorResponse DTO.
func ToVendorResponse(v *entity.Vendor) VendorResponse {
	return VendorResponse{
		ID:                 v.ID,
		Name:               v.Name,
		RepresentativeName: v.RepresentativeName,
		Phone:              v.Phone,
		IsActive:           v.IsActive,
		CreatedAt:          v.CreatedAt.UTC(),
		UpdatedAt:          v.UpdatedAt.UTC(),
		DeletedAt:          utc(v.DeletedAt),
	}
}

// ToVendorListResponse converts the list output to a VendorListResponse DTO.
func ToVendorListResponse(output *vendor.ListVendorsOutput) VendorListResponse {
	vendors := make([]VendorResponse, len(output.Vendors))
	for i, row := range output.Vendors {
		vendors[i] = ToVendorResponse(row.Vendor)
		amount := row.ThisMonthAmount
		vendors[i].ThisMonthAmount = &amount
	}

	return VendorListResponse{
		Vendors: vendors,
		Meta: VendorListMeta{
			PaginationMeta: newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
			ActiveCount:    output.ActiveCount,
		},
	}
}

// StatementEventResponse represents one row of a vendor statement.
type StatementEventResponse struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	DateKey string          `json:"date_key"`
	Time    string          `json:"time"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Note    string          `json:"note"`
}

// StatementMetricsResponse represents the statement summary figures.
type StatementMetricsResponse struct {
	TotalSalesAmount     decimal.Decimal `json:"total_sales_amount"`
	TotalPaymentAmount   decimal.Decimal `json:"total_payment_amount"`
	MonthlySalesAmount   decimal.Decimal `json:"monthly_sales_amount"`
	MonthlyPaymentAmount decimal.Decimal `json:"monthly_payment_amount"`
	OutstandingAmount    decimal.Decimal `json:"outstanding_amount"`
}

// VendorStatementResponse represents the response for a vendor statement.
type VendorStatementResponse struct {
	Vendor  VendorResponse           `json:"vendor"`
	Metrics StatementMetricsResponse `json:"metrics"`
	History []StatementEventResponse `json:"history"`
	Meta    PaginationMeta           `json:"meta"`
}

// ToVendorStatementResponse converts the statement output to a VendorStatementResponse DTO.
func ToVendorStatementResponse(output *statement.GetVendorStatementOutput) VendorStatementResponse {
	history := make([]StatementEventResponse, len(output.History))
	for i, event := range output.History {
		history[i] = StatementEventResponse{
			ID:      event.ID,
			Kind:    string(event.Kind),
			DateKey: event.DateKey,
			Time:    event.SortTime,
			Amount:  event.Amount,
			Balance: event.Balance,
			Note:    event.Note,
		}
	}

	return VendorStatementResponse{
		Vendor: ToVendorResponse(output.Vendor),
		Metrics: StatementMetricsResponse{
			TotalSalesAmount:     output.Metrics.TotalSalesAmount,
			TotalPaymentAmount:   output.Metrics.TotalPaymentAmount,
			MonthlySalesAmount:   output.Metrics.MonthlySalesAmount,
			MonthlyPaymentAmount: output.Metrics.MonthlyPaymentAmount,
			OutstandingAmount:    output.Metrics.OutstandingAmount,
		},
		History: history,
		Meta:    newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
	}
}
