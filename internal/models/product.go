package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;size:20"`
	SKU           *string         `json:"sku" gorm:"column:sku;size:50;uniqueIndex"`
	Barcode       string          `json:"barcode" gorm:"size:100"`
	Name          string          `json:"name" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"size:100;index"`
	Supplier      string          `json:"supplier" gorm:"size:100"`
	CurrentStock  int             `json:"current_stock" gorm:"not null"`
	MinStock      int             `json:"min_stock" gorm:"not null"`
	MaxStock      int             `json:"max_stock" gorm:"not null"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	UnitCost      decimal.Decimal `json:"unit_cost" gorm:"type:decimal(10,2);not null"`
	Status        string          `json:"status" gorm:"size:20;not null"` // in-stock, low-stock, out-of-stock
	Location      string          `json:"location" gorm:"size:100"`
	LastRestocked time.Time       `json:"last_restocked" gorm:"autoCreateTime;index"`
	Image         *string         `json:"image" gorm:"size:500"`
	Rating        int             `json:"rating" gorm:"not null"`
	Reviews       int             `json:"reviews" gorm:"not null"`
}

// ProductStatus is a label set by whoever manages stock; it is not derived
// from CurrentStock.
type ProductStatus string

const (
	ProductInStock    ProductStatus = "in-stock"
	ProductLowStock   ProductStatus = "low-stock"
	ProductOutOfStock ProductStatus = "out-of-stock"
)

const (
	DefaultMaxStock = 100
	DefaultRating   = 5
)

type ProductRequest struct {
	ID           string           `json:"id" binding:"omitempty,max=20"`
	SKU          string           `json:"sku" binding:"max=50"`
	Barcode      string           `json:"barcode" binding:"max=100"`
	Name         string           `json:"name" binding:"required,max=200"`
	Description  string           `json:"description"`
	Category     string           `json:"category" binding:"max=100"`
	Supplier     string           `json:"supplier" binding:"max=100"`
	CurrentStock int              `json:"current_stock" binding:"min=0"`
	MinStock     int              `json:"min_stock" binding:"min=0"`
	MaxStock     *int             `json:"max_stock" binding:"omitempty,min=0"`
	UnitPrice    *decimal.Decimal `json:"unit_price" binding:"required"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Status       string           `json:"status" binding:"omitempty,oneof=in-stock low-stock out-of-stock"`
	Location     string           `json:"location" binding:"max=100"`
	Image        string           `json:"image" binding:"max=500"`
	Rating       *int             `json:"rating" binding:"omitempty,min=0,max=5"`
	Reviews      int              `json:"reviews" binding:"min=0"`
}

func NewProductRequest(p *Product) ProductRequest {
	maxStock := p.MaxStock
	rating := p.Rating
	unitPrice := p.UnitPrice
	unitCost := p.UnitCost
	req := ProductRequest{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Supplier:     p.Supplier,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     &maxStock,
		UnitPrice:    &unitPrice,
		UnitCost:     &unitCost,
		Status:       p.Status,
		Location:     p.Location,
		Rating:       &rating,
		Reviews:      p.Reviews,
	}
	if p.SKU != nil {
		req.SKU = *p.SKU
	}
	if p.Image != nil {
		req.Image = *p.Image
	}
	return req
}

func (r *ProductRequest) Apply(p *Product) {
	p.SKU = optionalString(r.SKU)
	p.Barcode = r.Barcode
	p.Name = r.Name
	p.Description = r.Description
	p.Category = r.Category
	p.Supplier = r.Supplier
	p.CurrentStock = r.CurrentStock
	p.MinStock = r.MinStock
	p.MaxStock = DefaultMaxStock
	if r.MaxStock != nil {
		p.MaxStock = *r.MaxStock
	}
	if r.UnitPrice != nil {
		p.UnitPrice = r.UnitPrice.Round(2)
	}
	p.UnitCost = decimal.Zero
	if r.UnitCost != nil {
		p.UnitCost = r.UnitCost.Round(2)
	}
	p.Status = r.Status
	if p.Status == "" {
		p.Status = string(ProductInStock)
	}
	p.Location = r.Location
	p.Image = optionalString(r.Image)
	p.Rating = DefaultRating
	if r.Rating != nil {
		p.Rating = *r.Rating
	}
	p.Reviews = r.Reviews
}
