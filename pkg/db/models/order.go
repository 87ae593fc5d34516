package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// Order is the immutable snapshot of a purchase intent directed at exactly
// one wholesaler. Only the status (and updated_at) mutate after creation.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID     uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null" json:"vendorId"`
	WholesalerID uuid.UUID         `gorm:"column:wholesaler_id;type:uuid;not null" json:"wholesalerId"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	OrderMethod  enums.OrderMethod `gorm:"column:order_method;type:text;not null;default:'manual'" json:"orderMethod"`
	TotalAmount  decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null" json:"totalAmount"`
	Items        []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
