package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order. PriceAtPurchase is the unit price
// captured when the order was placed and is never recomputed.
type OrderItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderID         string          `json:"-" gorm:"size:20;not null;index"`
	ProductID       string          `json:"product" gorm:"size:20;not null;index"`
	Product         Product         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProductName     string          `json:"product_name" gorm:"-"`
	ProductImage    *string         `json:"product_image" gorm:"-"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) Denormalize() {
	if i.Product.ID != "" {
		i.ProductName = i.Product.Name
		i.ProductImage = i.Product.Image
	}
}

// LineTotal is quantity × price at purchase.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderItemRequest struct {
	Product         string           `json:"product" binding:"required,max=20"`
	Quantity        *int             `json:"quantity" binding:"omitempty,min=0"`
	PriceAtPurchase *decimal.Decimal `json:"price_at_purchase"`
}

const DefaultItemQuantity = 1
