package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/pkg/events"

	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id string, req *models.OrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	publisher     events.Publisher
	log           *logger.Logger
	now           func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	publisher events.Publisher,
	log *logger.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		publisher:     publisher,
		log:           log.With("service", "orders"),
		now:           time.Now,
	}
}

// CreateOrder stores the order and its items together. An item without an
// explicit price is charged the product's current unit price; that value is
// then frozen on the item. The order total is taken as given.
func (s *orderService) CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	vErr := apperrors.NewValidationError()

	order := &models.Order{ID: req.ID}
	if order.ID == "" {
		order.ID = newOrderID(s.now())
	} else {
		exists, err := s.orderRepo.Exists(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			vErr.Add("id", alreadyExists("order", "id"))
		}
	}
	if err := s.checkCustomer(ctx, req.Customer, vErr); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items, vErr)
	if err != nil {
		return nil, err
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	req.Apply(order)
	order.Items = items
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, translateWriteError(err)
	}

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("order created",
		"order_id", created.ID,
		"customer_id", created.CustomerID,
		"items", len(created.Items),
		"items_total", itemsTotal(created.Items).StringFixed(2),
		"total_amount", created.TotalAmount.StringFixed(2),
	)
	s.publish(ctx, events.OrderCreated, created)
	return created, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

// UpdateOrder rewrites the order-level fields. Items in the request are
// ignored: they are read-only once the order exists.
func (s *orderService) UpdateOrder(ctx context.Context, id string, req *models.OrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Customer != order.CustomerID {
		vErr := apperrors.NewValidationError()
		if err := s.checkCustomer(ctx, req.Customer, vErr); err != nil {
			return nil, err
		}
		if vErr.HasErrors() {
			return nil, vErr
		}
	}

	req.Apply(order)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, translateWriteError(err)
	}

	updated, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.OrderUpdated, updated)
	return updated, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", "order_id", id)
	s.publish(ctx, events.OrderDeleted, order)
	return nil
}

func (s *orderService) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderItemRepo.GetByOrderID(ctx, orderID)
}

// itemsTotal sums the line totals. It is only reported; total_amount is
// stored as the caller sent it.
func itemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	return total
}

func (s *orderService) checkCustomer(ctx context.Context, customerID string, vErr *apperrors.ValidationError) error {
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to look up customer: %w", err)
	}
	if !exists {
		vErr.Add("customer", invalidPK(customerID))
	}
	return nil
}

func (s *orderService) buildItems(ctx context.Context, reqs []models.OrderItemRequest, vErr *apperrors.ValidationError) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	for i, r := range reqs {
		product, err := s.productRepo.GetByID(ctx, r.Product)
		if errors.Is(err, apperrors.ErrNotFound) {
			vErr.Add("items", fmt.Sprintf("Item %d: %s", i, invalidPK(r.Product)))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up product: %w", err)
		}

		item := models.OrderItem{
			ProductID:       product.ID,
			Quantity:        models.DefaultItemQuantity,
			PriceAtPurchase: product.UnitPrice,
		}
		if r.Quantity != nil {
			item.Quantity = *r.Quantity
		}
		if r.PriceAtPurchase != nil {
			item.PriceAtPurchase = r.PriceAtPurchase.Round(2)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *orderService) publish(ctx context.Context, eventType string, order *models.Order) {
	publishOrderEvent(ctx, s.publisher, s.log, eventType, order, s.now())
}
