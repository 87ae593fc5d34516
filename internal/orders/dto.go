package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// Actor identifies who is acting on an order.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// CreateOrderRequest places a direct order against one wholesaler, bypassing
// the cart. The server recomputes every price; when the client supplies a
// total it must match the recomputed one.
type CreateOrderRequest struct {
	WholesalerID uuid.UUID           `json:"wholesalerId" validate:"required"`
	OrderMethod  enums.OrderMethod   `json:"orderMethod,omitempty"`
	TotalAmount  decimal.NullDecimal `json:"totalAmount,omitempty"`
	Items        []CreateOrderLine   `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderLine is one requested (product, quantity) pair. The client may
// echo the unit price it saw; like the total, it is checked against the
// catalog, never trusted.
type CreateOrderLine struct {
	ProductID uuid.UUID           `json:"productId" validate:"required"`
	Quantity  int                 `json:"quantity" validate:"required,min=1"`
	Price     decimal.NullDecimal `json:"price,omitempty"`
}

// UpdateStatusRequest carries the requested lifecycle target.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListFilter narrows and pages the order history query.
type ListFilter struct {
	Status *enums.OrderStatus
	Page   pagination.Params
}

// ListResponse carries one history page plus the cursor for the next one.
type ListResponse struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"nextCursor,omitempty"`
}
