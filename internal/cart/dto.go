package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Line pairs one cart row with the live product it references. LineTotal is
// computed from the live price; prices are only snapshotted at checkout.
type Line struct {
	Item      models.CartItem `json:"item"`
	Product   models.Product  `json:"product"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Summary is the full cart view returned to the buyer.
type Summary struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
