package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                string          `json:"id" gorm:"primaryKey;size:20"`
	CustomerID        string          `json:"customer" gorm:"size:20;not null;index"`
	Customer          Customer        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CustomerName      string          `json:"customer_name" gorm:"-"`
	CustomerEmail     string          `json:"customer_email" gorm:"-"`
	OrderDate         time.Time       `json:"order_date" gorm:"autoCreateTime;index"`
	Status            string          `json:"status" gorm:"size:20;not null;index"`
	PaymentMethod     string          `json:"payment_method" gorm:"size:50;not null"`
	PaymentStatus     string          `json:"payment_status" gorm:"size:20;not null;index"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	ShippingAddress   string          `json:"shipping_address" gorm:"type:text;not null"`
	TrackingNumber    *string         `json:"tracking_number" gorm:"size:100"`
	EstimatedDelivery *Date           `json:"estimated_delivery" gorm:"type:date"`
	Items             []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

// Denormalize copies the customer and product details of loaded
// associations into the read-only response fields.
func (o *Order) Denormalize() {
	if o.Customer.ID != "" {
		o.CustomerName = o.Customer.Name
		o.CustomerEmail = o.Customer.Email
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	for i := range o.Items {
		o.Items[i].Denormalize()
	}
}

type OrderRequest struct {
	ID                string             `json:"id" binding:"omitempty,max=20"`
	Customer          string             `json:"customer" binding:"required,max=20"`
	Status            string             `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentMethod     string             `json:"payment_method" binding:"required,max=50"`
	PaymentStatus     string             `json:"payment_status" binding:"required,oneof=paid pending refunded"`
	TotalAmount       *decimal.Decimal   `json:"total_amount" binding:"required"`
	ShippingAddress   string             `json:"shipping_address" binding:"required"`
	TrackingNumber    string             `json:"tracking_number" binding:"max=100"`
	EstimatedDelivery *Date              `json:"estimated_delivery"`
	Items             []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

func NewOrderRequest(o *Order) OrderRequest {
	total := o.TotalAmount
	req := OrderRequest{
		ID:              o.ID,
		Customer:        o.CustomerID,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		TotalAmount:     &total,
		ShippingAddress: o.ShippingAddress,
	}
	if o.TrackingNumber != nil {
		req.TrackingNumber = *o.TrackingNumber
	}
	if o.EstimatedDelivery != nil {
		d := *o.EstimatedDelivery
		req.EstimatedDelivery = &d
	}
	return req
}

// Apply copies the order-level fields onto o. Items are handled separately
// because they can only be written when the order is created.
func (r *OrderRequest) Apply(o *Order) {
	o.CustomerID = r.Customer
	o.Status = r.Status
	if o.Status == "" {
		o.Status = string(OrderPending)
	}
	o.PaymentMethod = r.PaymentMethod
	o.PaymentStatus = r.PaymentStatus
	if r.TotalAmount != nil {
		o.TotalAmount = r.TotalAmount.Round(2)
	}
	o.ShippingAddress = r.ShippingAddress
	o.TrackingNumber = optionalString(r.TrackingNumber)
	o.EstimatedDelivery = r.EstimatedDelivery
}
