package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
)

// CreateItem persists the item together with its zero-stock inventory
// row in one transaction.
func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item, unit string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		inv := models.Inventory{ItemID: item.ID, Stock: 0, Unit: unit}
		return tx.Create(&inv).Error
	})
}

func (r *GormRepo) ListActiveItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetActiveItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeactivateItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStock overwrites the stock count for an item. Not a delta.
func (r *GormRepo) SetStock(ctx context.Context, itemID uint, stock int) (*models.Inventory, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Inventory{}).
		Where("item_id = ?", itemID).
		Updates(map[string]interface{}{"stock": stock, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var inv models.Inventory
	if err := r.DB.WithContext(ctx).Where("item_id = ?", itemID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormRepo) GetInventory(ctx context.Context, itemID uint) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).Where("item_id = ?", itemID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
