package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aqynbek/restaurant-backoffice/internal/repo"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

const dateLayout = "2006-01-02"

// ReportService runs read-only aggregates. Cancelled orders never
// count toward sales.
type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) DailySales(ctx context.Context) (*transport.DailySalesResponse, error) {
	dayStart := startOfDay(time.Now())
	total, count, err := s.Repo.SalesBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &transport.DailySalesResponse{
		Date:        dayStart.Format(dateLayout),
		TotalSales:  total,
		OrdersCount: count,
	}, nil
}

func (s *ReportService) WeeklySales(ctx context.Context) (*transport.WeeklySalesResponse, error) {
	dayStart := startOfDay(time.Now())
	start := dayStart.AddDate(0, 0, -7)
	total, _, err := s.Repo.SalesBetween(ctx, start, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &transport.WeeklySalesResponse{
		StartDate:   start.Format(dateLayout),
		EndDate:     dayStart.Format(dateLayout),
		WeeklySales: total,
	}, nil
}

func (s *ReportService) TopItems(ctx context.Context, limit int) ([]transport.TopItemRow, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Repo.TopItems(ctx, limit)
}

func (s *ReportService) LowStock(ctx context.Context, threshold int) ([]transport.LowStockRow, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.Repo.LowStock(ctx, threshold)
}

// RangeSales aggregates over [start, end] with the end date inclusive
// through end of day. Malformed dates degrade to a validation error,
// never a panic.
func (s *ReportService) RangeSales(ctx context.Context, startDate, endDate string) (*transport.RangeSalesResponse, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: use format YYYY-MM-DD", ErrValidation)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: use format YYYY-MM-DD", ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}

	total, _, err := s.Repo.SalesBetween(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &transport.RangeSalesResponse{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		TotalSales: total,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
