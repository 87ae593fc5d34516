package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// Product represents a wholesaler's catalog listing. The localized name
// columns and voice aliases feed the multilingual and voice-ordering paths.
type Product struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string                `gorm:"column:name;not null" json:"name"`
	NameHi       *string               `gorm:"column:name_hi" json:"nameHi,omitempty"`
	NameTe       *string               `gorm:"column:name_te" json:"nameTe,omitempty"`
	VoiceAliases pq.StringArray        `gorm:"column:voice_aliases;type:text[]" json:"voiceAliases,omitempty"`
	Category     enums.ProductCategory `gorm:"column:category;type:text;not null" json:"category"`
	Price        decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Unit         enums.ProductUnit     `gorm:"column:unit;type:text;not null" json:"unit"`
	WholesalerID uuid.UUID             `gorm:"column:wholesaler_id;type:uuid;not null" json:"wholesalerId"`
	ImageURL     *string               `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Rating       decimal.Decimal       `gorm:"column:rating;type:numeric(3,2);not null;default:0" json:"rating"`
	InStock      bool                  `gorm:"column:in_stock;not null;default:true" json:"inStock"`
	MinQuantity  int                   `gorm:"column:min_quantity;not null;default:1" json:"minQuantity"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// LocalizedName returns the product name for the requested language, falling
// back to the default name when no translation exists.
func (p Product) LocalizedName(lang enums.Language) string {
	switch lang {
	case enums.LanguageHindi:
		if p.NameHi != nil && *p.NameHi != "" {
			return *p.NameHi
		}
	case enums.LanguageTelugu:
		if p.NameTe != nil && *p.NameTe != "" {
			return *p.NameTe
		}
	}
	return p.Name
}
