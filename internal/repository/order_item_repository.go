package repository

import (
	"context"

	"store_manager/internal/models"

	"gorm.io/gorm"
)

// OrderItemRepository is read-only: items are written once, together with
// their order, by OrderRepository.Create.
type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	orderItems := []models.OrderItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&orderItems).Error
	if err != nil {
		return nil, err
	}
	for i := range orderItems {
		orderItems[i].Denormalize()
	}
	return orderItems, nil
}
