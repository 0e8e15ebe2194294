package testutil

import (
	"context"
	"testing"
	"time"

	"store_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedCustomer(tb testing.TB, db *gorm.DB, id, status string) *models.Customer {
	tb.Helper()
	c := &models.Customer{
		ID:          id,
		Name:        "Customer " + id,
		Email:       id + "@example.com",
		Phone:       "+1 (555) 000-0000",
		Address:     "1 Test Street",
		Status:      status,
		LoyaltyTier: models.DefaultLoyaltyTier,
	}
	if err := db.WithContext(context.Background()).Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, db *gorm.DB, id, category string, stock int, price string) *models.Product {
	tb.Helper()
	image := "https://img.example/" + id + ".jpg"
	p := &models.Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      category,
		CurrentStock:  stock,
		MaxStock:      models.DefaultMaxStock,
		UnitPrice:     decimal.RequireFromString(price),
		Status:        string(models.ProductInStock),
		Rating:        models.DefaultRating,
		Image:         &image,
		LastRestocked: time.Now(),
	}
	if err := db.WithContext(context.Background()).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// SeedOrder inserts an order with its items as-is. Items must carry
// ProductID, Quantity and PriceAtPurchase.
func SeedOrder(tb testing.TB, db *gorm.DB, id, customerID, paymentStatus, total string, orderDate time.Time, items ...models.OrderItem) *models.Order {
	tb.Helper()
	o := &models.Order{
		ID:              id,
		CustomerID:      customerID,
		OrderDate:       orderDate,
		Status:          string(models.OrderPending),
		PaymentMethod:   "Credit Card",
		PaymentStatus:   paymentStatus,
		TotalAmount:     decimal.RequireFromString(total),
		ShippingAddress: "1 Test Street",
	}
	err := db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Items").Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
			if err := tx.Omit("Product").Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	o.Items = items
	return o
}

func Item(productID string, quantity int, price string) models.OrderItem {
	return models.OrderItem{
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtPurchase: decimal.RequireFromString(price),
	}
}
