package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem snapshots the bangle name, color name and price at purchase time.
// Items are immutable after the order is created.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"orderId"`
	BangleID        string          `gorm:"size:64;not null" json:"bangleId"`
	BangleName      string          `gorm:"size:255;not null" json:"bangleName"`
	ColorVariantID  string          `gorm:"size:64" json:"colorVariantId"`
	ColorName       string          `gorm:"size:255" json:"colorName"`
	SelectedSize    string          `gorm:"size:64" json:"selectedSize"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceAtPurchase"`
}
