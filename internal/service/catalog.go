package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/repo"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) CreateItem(ctx context.Context, req transport.ItemCreateRequest) (*models.Item, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
	}
	if err := s.Repo.CreateItem(ctx, item, unit); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListActiveItems(ctx)
}

func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.Repo.GetActiveItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d not found", ErrNotFound, id)
		}
		return nil, err
	}
	return item, nil
}

// UpdateItem is a full replace of the mutable fields.
func (s *CatalogService) UpdateItem(ctx context.Context, id uint, req transport.ItemUpdateRequest) (*models.Item, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	item, err := s.Repo.GetActiveItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d not found", ErrNotFound, id)
		}
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category

	if err := s.Repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeactivateItem(ctx context.Context, id uint) error {
	if err := s.Repo.DeactivateItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d not found", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// PatchInventory overwrites the stock count, it is not a delta.
func (s *CatalogService) PatchInventory(ctx context.Context, itemID uint, stock int) (*models.Inventory, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	inv, err := s.Repo.SetStock(ctx, itemID, stock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: inventory for item %d not found", ErrNotFound, itemID)
		}
		return nil, err
	}
	return inv, nil
}
