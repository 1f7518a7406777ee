package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aqynbek/restaurant-backoffice/internal/logging"
	"github.com/aqynbek/restaurant-backoffice/internal/service"
	"github.com/aqynbek/restaurant-backoffice/internal/util"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) DailySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.daily_sales")

	resp, err := h.Svc.DailySales(ctx)
	if err != nil {
		l.Error("daily_sales_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReportHTTP) WeeklySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.weekly_sales")

	resp, err := h.Svc.WeeklySales(ctx)
	if err != nil {
		l.Error("weekly_sales_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReportHTTP) TopItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.top_items")

	limit := util.ParseIntDefault(c.QueryParam("limit"), 5)
	rows, err := h.Svc.TopItems(ctx, limit)
	if err != nil {
		l.Error("top_items_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHTTP) LowStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.low_stock")

	threshold := util.ParseIntDefault(c.QueryParam("threshold"), 10)
	rows, err := h.Svc.LowStock(ctx, threshold)
	if err != nil {
		l.Error("low_stock_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHTTP) RangeSales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.range_sales")

	resp, err := h.Svc.RangeSales(ctx, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		he := httpError(err)
		l.Warn("range_sales_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusOK, resp)
}
