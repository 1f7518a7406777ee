package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aqynbek/restaurant-backoffice/internal/logging"
	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/service"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

type OrderHTTP struct {
	Svc     *service.OrderService
	Publish PublishFunc
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	uid, ok := callerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	role, _ := callerRole(c)

	var req transport.OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Customers order for themselves; only managers may place an
	// order on behalf of another user.
	userID := req.UserID
	if userID == 0 {
		userID = uid
	}
	if userID != uid && role != models.RoleManager {
		l.Warn("place_order_error", "status", 403, "reason", "user_id mismatch")
		return echo.NewHTTPError(http.StatusForbidden, "cannot order for another user")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req)
	if err != nil {
		he := httpError(err)
		l.Warn("place_order_error", "status", he.Code, "error", err)
		return he
	}

	h.Publish(c, "order_events", fmt.Sprint(order.ID), map[string]interface{}{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
	})

	l.Info("place_order_success", "order_id", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	uid, ok := callerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	role, _ := callerRole(c)

	order, err := h.Svc.GetOrder(ctx, id, uid, role)
	if err != nil {
		he := httpError(err)
		l.Warn("get_order_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status == "" {
		// also accepted as a query parameter
		req.Status = c.QueryParam("status")
	}

	if err := h.Svc.UpdateStatus(ctx, id, req.Status); err != nil {
		he := httpError(err)
		l.Warn("update_status_error", "status", he.Code, "error", err)
		return he
	}

	h.Publish(c, "order_events", fmt.Sprint(id), map[string]interface{}{
		"type":     "order_status_changed",
		"order_id": id,
		"status":   req.Status,
	})

	l.Info("update_status_success", "order_id", id, "new_status", req.Status)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("order %d status set to %s", id, req.Status),
	})
}
