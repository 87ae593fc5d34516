package voice

import (
	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
)

type InterpretRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	Language   string `json:"language,omitempty"`
	AddToCart  bool   `json:"addToCart,omitempty"`
}

// Interpretation is the outcome of running a transcript through the command
// catalog and the live product listing.
type Interpretation struct {
	CommandKey    string          `json:"commandKey"`
	ProductName   string          `json:"productName"`
	LocalizedName string          `json:"localizedName"`
	Quantity      int             `json:"quantity"`
	Product       *models.Product `json:"product,omitempty"`
	Cart          *cart.Summary   `json:"cart,omitempty"`
}
