package services

import (
	"context"
	"errors"
	"fmt"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
	log         *logger.Logger
}

func NewProductService(productRepo repository.ProductRepository, log *logger.Logger) ProductService {
	return &productService{productRepo: productRepo, log: log.With("service", "products")}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{ID: req.ID}
	if product.ID == "" {
		product.ID = newID("PRD-")
	} else {
		exists, err := s.productRepo.Exists(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.FieldError("id", alreadyExists("product", "id"))
		}
	}
	req.Apply(product)

	if err := s.checkSKUFree(ctx, product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, translateWriteError(err)
	}

	s.log.Info("product created", "product_id", product.ID)
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// UpdateProduct never touches the status label on its own: stock counts and
// status are independent fields.
func (s *productService) UpdateProduct(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(product)

	if err := s.checkSKUFree(ctx, product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, translateWriteError(err)
	}
	return product, nil
}

// DeleteProduct also removes every order item that references the product.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

func (s *productService) checkSKUFree(ctx context.Context, product *models.Product) error {
	if product.SKU == nil {
		return nil
	}
	other, err := s.productRepo.GetBySKU(ctx, *product.SKU)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check product sku: %w", err)
	case other.ID != product.ID:
		return apperrors.FieldError("sku", alreadyExists("product", "sku"))
	}
	return nil
}
