package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"housebill/internal/caching"
	"housebill/internal/models"
	"housebill/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProductNotFound = errors.New("product not found")

// Presentation defaults applied when a product is created without them.
const (
	defaultProductIcon  = "📦"
	defaultProductColor = "#6366f1"
)

type ProductService struct {
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheSvc caching.CacheService) *ProductService {
	return &ProductService{productRepo: productRepo, cacheSvc: cacheSvc}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Icon == "" {
		product.Icon = defaultProductIcon
	}
	if product.Color == "" {
		product.Color = defaultProductColor
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// DeleteProduct detaches the product from houses and members, then removes it.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) invalidateStats(ctx context.Context) {
	if err := s.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
}
