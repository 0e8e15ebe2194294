package repository

import (
	"context"

	"store_manager/internal/models"

	"gorm.io/gorm"
)

type OrderFilter struct {
	Status        string
	PaymentStatus string
	PaymentMethod string
	CustomerID    string
	Search        string
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create writes the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Items").Create(order).Error; err != nil {
			return err
		}
		items := NewOrderItemRepository(tx)
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := items.Create(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := withDetails(r.db.WithContext(ctx)).Where("orders.id = ?", id).First(&order).Error
	if err != nil {
		return nil, notFound(err, "order "+id)
	}
	order.Denormalize()
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := withDetails(r.db.WithContext(ctx)).Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Search != "" {
		p := containsPattern(filter.Search)
		query = query.Where(
			"LOWER(id)"+likeClause+" OR customer_id IN (SELECT id FROM customers WHERE LOWER(name)"+likeClause+" OR LOWER(email)"+likeClause+")",
			p, p, p,
		)
	}

	orders := []models.Order{}
	if err := query.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Denormalize()
	}
	return orders, nil
}

// Update saves the order-level columns only. Items are fixed at creation.
func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Customer", "Items").Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "order "+id)
	}
	return nil
}

func (r *orderRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// withDetails preloads what an order response needs: the customer for the
// denormalized name/email and the items with their products.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id")
		}).
		Preload("Items.Product")
}
