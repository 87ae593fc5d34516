package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// OrderLineItem captures the per-product snapshot inside an order. UnitPrice
// is the price at order-build time, never re-read from the live product.
type OrderLineItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null" json:"orderId"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	ProductName string            `gorm:"column:product_name;not null" json:"productName"`
	Unit        enums.ProductUnit `gorm:"column:unit;type:text;not null" json:"unit"`
	Quantity    int               `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unitPrice"`
	LineTotal   decimal.Decimal   `gorm:"column:line_total;type:numeric(10,2);not null" json:"lineTotal"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
