package repository

import (
	"context"
	"fmt"

	"store_manager/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository holds the fixed aggregate queries behind the
// dashboard. Each method is a single read with no shared state.
type DashboardRepository interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
	ProductsSold(ctx context.Context) (int64, error)
	CountActiveCustomers(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	RecentProducts(ctx context.Context, limit int) ([]models.Product, error)
	InventoryByCategory(ctx context.Context) ([]models.CategoryStock, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

const (
	totalRevenueSQL = `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = ?`
	productsSoldSQL = `SELECT COALESCE(SUM(quantity), 0) FROM order_items`
)

// Null and empty categories share one bucket. Grouping by ordinal keeps
// the select and group expressions identical on every dialect.
var inventoryByCategorySQL = fmt.Sprintf(
	`SELECT COALESCE(NULLIF(category, ''), '%s') AS name, COALESCE(SUM(current_stock), 0) AS stock `+
		`FROM products GROUP BY 1 ORDER BY stock DESC, name ASC`,
	models.UncategorizedLabel,
)

func (r *dashboardRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(totalRevenueSQL, string(models.PaymentPaid)).Row().Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid revenue: %w", err)
	}
	return total.Round(2), nil
}

func (r *dashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) ProductsSold(ctx context.Context) (int64, error) {
	var sold int64
	if err := r.db.WithContext(ctx).Raw(productsSoldSQL).Row().Scan(&sold); err != nil {
		return 0, fmt.Errorf("failed to sum sold quantities: %w", err)
	}
	return sold, nil
}

func (r *dashboardRepository) CountActiveCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("status = ?", string(models.CustomerActive)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active customers: %w", err)
	}
	return count, nil
}

// RecentOrders returns the newest orders first; id breaks timestamp ties.
func (r *dashboardRepository) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := withDetails(r.db.WithContext(ctx)).
		Order("order_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	for i := range orders {
		orders[i].Denormalize()
	}
	return orders, nil
}

func (r *dashboardRepository) RecentProducts(ctx context.Context, limit int) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Order("last_restocked DESC").
		Order("id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent products: %w", err)
	}
	return products, nil
}

func (r *dashboardRepository) InventoryByCategory(ctx context.Context) ([]models.CategoryStock, error) {
	rows := []models.CategoryStock{}
	if err := r.db.WithContext(ctx).Raw(inventoryByCategorySQL).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to roll up stock by category: %w", err)
	}
	return rows, nil
}
