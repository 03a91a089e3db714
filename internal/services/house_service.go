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

var ErrHouseNotFound = errors.New("house not found")

type HouseService struct {
	houseRepo   repositories.HouseRepository
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
}

func NewHouseService(houseRepo repositories.HouseRepository, productRepo repositories.ProductRepository,
	cacheSvc caching.CacheService) *HouseService {
	return &HouseService{houseRepo: houseRepo, productRepo: productRepo, cacheSvc: cacheSvc}
}

func (s *HouseService) CreateHouse(ctx context.Context, house *models.House) error {
	if house.Name == "" {
		return fmt.Errorf("house name is required")
	}
	if house.ProductID != nil {
		if _, err := s.productRepo.GetByID(ctx, *house.ProductID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("product %s does not exist", house.ProductID)
			}
			return err
		}
	}

	if house.ID == uuid.Nil {
		house.ID = uuid.New()
	}
	if err := s.houseRepo.Create(ctx, house); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *HouseService) GetHouse(ctx context.Context, id uuid.UUID) (*models.House, error) {
	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

func (s *HouseService) UpdateHouse(ctx context.Context, house *models.House) error {
	if house.Name == "" {
		return fmt.Errorf("house name is required")
	}
	if err := s.houseRepo.Update(ctx, house); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHouseNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// DeleteHouse removes the house and cascades to its members and their
// payment history.
func (s *HouseService) DeleteHouse(ctx context.Context, id uuid.UUID) error {
	if err := s.houseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHouseNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *HouseService) ListHouses(ctx context.Context) ([]*models.House, error) {
	return s.houseRepo.List(ctx)
}

func (s *HouseService) invalidateStats(ctx context.Context) {
	if err := s.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
}
