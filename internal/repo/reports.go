package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

// SalesBetween sums non-cancelled order totals with created_at in
// [from, to).
func (r *GormRepo) SalesBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status <> ?", models.StatusCancelled).
		Scan(&row).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}

func (r *GormRepo) TopItems(ctx context.Context, limit int) ([]transport.TopItemRow, error) {
	rows := make([]transport.TopItemRow, 0, limit)
	if err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("items.name AS item, SUM(order_items.qty) AS qty_sold").
		Joins("JOIN items ON items.id = order_items.item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", models.StatusCancelled).
		Group("items.name").
		Order("qty_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) LowStock(ctx context.Context, threshold int) ([]transport.LowStockRow, error) {
	var rows []transport.LowStockRow
	if err := r.DB.WithContext(ctx).
		Table("inventory").
		Select("items.name AS item, inventory.stock, inventory.unit").
		Joins("JOIN items ON items.id = inventory.item_id").
		Where("inventory.stock <= ?", threshold).
		Order("inventory.stock ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
