package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/repo"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// PlaceOrder creates an order for userID. The requester places for
// themselves; managers may place on behalf of any user.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req transport.OrderCreateRequest) (*transport.FullOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, line := range req.Items {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: qty must be > 0", ErrValidation)
		}
	}

	order, err := s.Repo.PlaceOrder(ctx, userID, req.Items)
	if err != nil {
		var stockErr *repo.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return nil, fmt.Errorf("%w: %s", ErrValidation, stockErr.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, notFoundReason(err))
		default:
			return nil, err
		}
	}

	return s.fullOrder(ctx, order)
}

// GetOrder returns the order joined with item names. Customers can
// only read their own orders; staff and managers can read any.
func (s *OrderService) GetOrder(ctx context.Context, id uint, requesterID uint, requesterRole models.Role) (*transport.FullOrderResponse, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d not found", ErrNotFound, id)
		}
		return nil, err
	}

	if order.UserID != requesterID && !requesterRole.AllowedFor(models.RoleStaff, models.RoleManager) {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}

	return s.fullOrder(ctx, order)
}

// UpdateStatus transitions the order. The repo rejects transitions
// out of the terminal states and restores stock when cancelling.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, next); err != nil {
		var transErr *repo.InvalidTransitionError
		switch {
		case errors.As(err, &transErr):
			return fmt.Errorf("%w: %s", ErrValidation, transErr.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("%w: order %d not found", ErrNotFound, id)
		default:
			return err
		}
	}
	return nil
}

func (s *OrderService) fullOrder(ctx context.Context, order *models.Order) (*transport.FullOrderResponse, error) {
	details, err := s.Repo.OrderLineDetails(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &transport.FullOrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		Items:       details,
	}, nil
}

// notFoundReason keeps the item id from the repo error in the message
// while the sentinel drives the HTTP status.
func notFoundReason(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+gorm.ErrRecordNotFound.Error())
	return msg + " not found"
}
