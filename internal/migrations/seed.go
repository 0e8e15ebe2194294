package migrations

import (
	"context"
	"fmt"
	"time"

	"store_manager/internal/logger"
	"store_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedItem struct {
	productID string
	quantity  int
}

type seedOrder struct {
	id            string
	customerID    string
	status        models.OrderStatus
	paymentMethod string
	total         string
	daysAgo       int
	items         []seedItem
}

func demoProducts() []models.Product {
	product := func(id, sku, name, description, category, price string, stock int, status models.ProductStatus, image string) models.Product {
		return models.Product{
			ID:           id,
			SKU:          &sku,
			Name:         name,
			Description:  description,
			Category:     category,
			CurrentStock: stock,
			MaxStock:     models.DefaultMaxStock,
			UnitPrice:    decimal.RequireFromString(price),
			Status:       string(status),
			Rating:       models.DefaultRating,
			Image:        &image,
		}
	}
	return []models.Product{
		product("PRD-001", "WHP-001", "Wireless Headphones Pro", "Premium noise cancellation with 30-hour battery life",
			"Electronics", "199.99", 150, models.ProductInStock,
			"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop"),
		product("PRD-002", "SWS-005", "Smart Watch Series 5", "Fitness tracking & notifications",
			"Electronics", "249.99", 75, models.ProductInStock,
			"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop"),
		product("PRD-003", "BTS-360", "360° Bluetooth Speaker", "Portable with 20h battery life",
			"Electronics", "89.99", 5, models.ProductLowStock,
			"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400&h=400&fit=crop"),
		product("PRD-004", "OGT-100", "Organic Green Tea", "Premium grade organic tea leaves",
			"Food & Beverage", "24.99", 200, models.ProductInStock,
			"https://images.unsplash.com/photo-1576092768241-dec231879fc3?w=400&h=400&fit=crop"),
		product("PRD-005", "YMP-001", "Yoga Mat Premium", "Non-slip eco-friendly material",
			"Sports", "45.99", 0, models.ProductOutOfStock,
			"https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=400&fit=crop"),
	}
}

func demoCustomers() []models.Customer {
	customer := func(id, name, email, phone, address, tier, avatar string) models.Customer {
		return models.Customer{
			ID:          id,
			Name:        name,
			Email:       email,
			Phone:       phone,
			Address:     address,
			Status:      string(models.CustomerActive),
			LoyaltyTier: tier,
			Avatar:      &avatar,
		}
	}
	return []models.Customer{
		customer("CUST-001", "John Doe", "john.doe@email.com", "+1 (555) 123-4567",
			"123 Main St, New York, NY 10001", "Gold", "https://picsum.photos/seed/john/40/40.jpg"),
		customer("CUST-002", "Jane Smith", "jane.smith@email.com", "+1 (555) 234-5678",
			"456 Oak Ave, Los Angeles, CA 90001", "Silver", "https://picsum.photos/seed/jane/40/40.jpg"),
		customer("CUST-003", "Robert Johnson", "robert.j@email.com", "+1 (555) 345-6789",
			"789 Pine Rd, Chicago, IL 60601", "Bronze", "https://picsum.photos/seed/robert/40/40.jpg"),
	}
}

var demoOrders = []seedOrder{
	{"ORD-2024-001", "CUST-001", models.OrderDelivered, "Credit Card", "259.98", 2, []seedItem{{"PRD-001", 1}, {"PRD-004", 2}}},
	{"ORD-2024-002", "CUST-002", models.OrderShipped, "PayPal", "189.99", 1, []seedItem{{"PRD-002", 1}}},
	{"ORD-2024-003", "CUST-003", models.OrderProcessing, "Debit Card", "425.50", 0, []seedItem{{"PRD-003", 2}, {"PRD-001", 1}}},
}

// SeedDemoData loads the demo catalogue, customers and paid orders into an
// empty store. A store that already has products is left alone. Items are
// charged the product's unit price, as a checkout would.
func SeedDemoData(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			log.Info("Store already has products, skipping demo data", "products", count)
			return nil
		}

		products := demoProducts()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		prices := make(map[string]decimal.Decimal, len(products))
		for _, p := range products {
			prices[p.ID] = p.UnitPrice
		}

		customers := demoCustomers()
		if err := tx.Create(&customers).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
		addresses := make(map[string]string, len(customers))
		for _, c := range customers {
			addresses[c.ID] = c.Address
		}

		now := time.Now()
		for _, o := range demoOrders {
			order := models.Order{
				ID:              o.id,
				CustomerID:      o.customerID,
				OrderDate:       now.AddDate(0, 0, -o.daysAgo),
				Status:          string(o.status),
				PaymentMethod:   o.paymentMethod,
				PaymentStatus:   string(models.PaymentPaid),
				TotalAmount:     decimal.RequireFromString(o.total),
				ShippingAddress: addresses[o.customerID],
			}
			for _, item := range o.items {
				order.Items = append(order.Items, models.OrderItem{
					ProductID:       item.productID,
					Quantity:        item.quantity,
					PriceAtPurchase: prices[item.productID],
				})
			}
			if err := tx.Omit("Customer").Create(&order).Error; err != nil {
				return fmt.Errorf("failed to seed order %s: %w", o.id, err)
			}
		}

		log.Info("Demo data seeded", "products", len(products), "customers", len(customers), "orders", len(demoOrders))
		return nil
	})
}
