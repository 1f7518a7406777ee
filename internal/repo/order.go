package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

// InsufficientStockError is returned when a line asks for more than
// the inventory holds. The failing item id travels with the error.
type InsufficientStockError struct {
	ItemID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d", e.ItemID)
}

// InvalidTransitionError is returned when a status change is not in
// the allowed-transition table.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// PlaceOrder runs the whole multi-line placement in one transaction:
// per line, the stock check and decrement execute as a single guarded
// UPDATE, so two concurrent placements can never both pass the check
// and drive stock negative. Any failing line rolls back every
// decrement and the order itself.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, lines []transport.OrderLine) (*models.Order, error) {
	order := &models.Order{
		UserID: userID,
		Status: models.StatusCreated,
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			var item models.Item
			if err := tx.Where("id = ? AND is_active = ?", line.ItemID, true).
				First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("item %d: %w", line.ItemID, gorm.ErrRecordNotFound)
				}
				return err
			}

			res := tx.Model(&models.Inventory{}).
				Where("item_id = ? AND stock >= ?", line.ItemID, line.Qty).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock - ?", line.Qty),
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var inv models.Inventory
				if err := tx.Where("item_id = ?", line.ItemID).First(&inv).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("inventory for item %d: %w", line.ItemID, gorm.ErrRecordNotFound)
					}
					return err
				}
				return &InsufficientStockError{ItemID: line.ItemID}
			}

			items = append(items, models.OrderItem{
				ItemID:    item.ID,
				Qty:       line.Qty,
				UnitPrice: item.Price,
			})
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
		}

		order.TotalAmount = total
		order.Items = items
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderLineDetails joins each line to its item for the display name.
func (r *GormRepo) OrderLineDetails(ctx context.Context, orderID uint) ([]transport.OrderLineDetail, error) {
	var details []transport.OrderLineDetail
	if err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.item_id, items.name, order_items.qty, order_items.unit_price").
		Joins("JOIN items ON items.id = order_items.item_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateOrderStatus applies a transition. Entering cancelled restores
// every line's quantity to inventory inside the same transaction, so
// the restore happens exactly once: terminal states reject any
// further transition, which closes the double-cancel gap.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, next models.OrderStatus) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: order.Status, To: next}
		}

		if next == models.StatusCancelled {
			for _, line := range order.Items {
				if err := tx.Model(&models.Inventory{}).
					Where("item_id = ?", line.ItemID).
					Updates(map[string]interface{}{
						"stock":      gorm.Expr("stock + ?", line.Qty),
						"updated_at": time.Now(),
					}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", next).Error
	})
}
