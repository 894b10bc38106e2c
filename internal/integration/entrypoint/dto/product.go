package dto

import (
	"time"

	"github.com/ledger-backoffice/backend/internal/application/usecase/product"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// CreateProductRequest represents the request body for product creation.
type CreateProductRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit"`
}

// UpdateProductRequest represents the request body for product update.
type UpdateProductRequest struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

// ListProductsQuery represents the query parameters for listing products.
type ListProductsQuery struct {
	PageQuery
	Keyword        string `form:"keyword"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// ProductResponse represents a single product in API responses.
type ProductResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Unit      string     `json:"unit"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ProductListResponse represents the response for listing products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Meta     PaginationMeta    `json:"meta"`
}

// ToProductResponse converts a domain Product entity to a ProductResponse DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
		DeletedAt: utc(p.DeletedAt),
	}
}

// ToProductListResponse converts the list output to a ProductListResponse DTO.
func ToProductListResponse(output *product.ListProductsOutput) ProductListResponse {
	products := make([]ProductResponse, len(output.Products))
	for i, p := range output.Products {
		products[i] = ToProductResponse(p)
	}
	return ProductListResponse{
		Products: products,
		Meta:     newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
	}
}
