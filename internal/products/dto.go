package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// CreateProductRequest is the wholesaler-facing payload for a new listing.
type CreateProductRequest struct {
	Name         string                `json:"name" validate:"required"`
	NameHi       *string               `json:"nameHi,omitempty"`
	NameTe       *string               `json:"nameTe,omitempty"`
	VoiceAliases []string              `json:"voiceAliases,omitempty"`
	Category     enums.ProductCategory `json:"category" validate:"required"`
	Price        decimal.Decimal       `json:"price" validate:"required"`
	Unit         enums.ProductUnit     `json:"unit" validate:"required"`
	ImageURL     *string               `json:"imageUrl,omitempty"`
	MinQuantity  int                   `json:"minQuantity,omitempty"`
}

// UpdateProductRequest carries the mutable listing fields. Nil pointers leave
// the stored value untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	NameHi      *string          `json:"nameHi,omitempty"`
	NameTe      *string          `json:"nameTe,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	InStock     *bool            `json:"inStock,omitempty"`
	MinQuantity *int             `json:"minQuantity,omitempty"`
}

// ListFilter narrows the product listing query.
type ListFilter struct {
	Category     *enums.ProductCategory
	WholesalerID *uuid.UUID
	InStockOnly  bool
	Search       string
	Page         pagination.Params
}
