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
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *models.CustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	publisher    events.Publisher
	log          *logger.Logger
	now          func() time.Time
}

// NewCustomerService takes the order repository and publisher because a
// customer delete also removes that customer's orders. A nil publisher
// becomes a no-op.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	publisher events.Publisher,
	log *logger.Logger,
) CustomerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		publisher:    publisher,
		log:          log.With("service", "customers"),
		now:          time.Now,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{ID: req.ID}
	if customer.ID == "" {
		customer.ID = newID("CUST-")
	} else {
		exists, err := s.customerRepo.Exists(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.FieldError("id", alreadyExists("customer", "id"))
		}
	}
	req.Apply(customer)

	if err := s.checkEmailFree(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, translateWriteError(err)
	}

	s.log.Info("customer created", "customer_id", customer.ID)
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, error) {
	return s.customerRepo.List(ctx, filter)
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *models.CustomerRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(customer)

	if err := s.checkEmailFree(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, translateWriteError(err)
	}
	return customer, nil
}

// DeleteCustomer also removes the customer's orders and their items. An
// order-deleted event goes out for every order the cascade removed.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	orders, err := s.orderRepo.List(ctx, repository.OrderFilter{CustomerID: id})
	if err != nil {
		return fmt.Errorf("failed to load customer orders: %w", err)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("customer deleted", "customer_id", id, "orders", len(orders))
	for i := range orders {
		publishOrderEvent(ctx, s.publisher, s.log, events.OrderDeleted, &orders[i], s.now())
	}
	return nil
}

func (s *customerService) checkEmailFree(ctx context.Context, customer *models.Customer) error {
	other, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check customer email: %w", err)
	case other.ID != customer.ID:
		return apperrors.FieldError("email", alreadyExists("customer", "email"))
	}
	return nil
}
