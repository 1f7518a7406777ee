package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/aqynbek/restaurant-backoffice/internal/logging"
	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/search"
	"github.com/aqynbek/restaurant-backoffice/internal/service"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
	"github.com/aqynbek/restaurant-backoffice/internal/util"
)

type CatalogHTTP struct {
	Svc     *service.CatalogService
	Publish PublishFunc
	ES      *elasticsearch.Client
	Index   string
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_item")

	var req transport.ItemCreateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		he := httpError(err)
		l.Warn("create_item_error", "status", he.Code, "error", err)
		return he
	}

	h.indexItem(c, *item)
	h.Publish(c, "catalog_events", fmt.Sprint(item.ID), map[string]interface{}{
		"type":    "item_created",
		"item_id": item.ID,
		"name":    item.Name,
	})

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_items")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_error", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.Svc.GetItem(ctx, id)
	if err != nil {
		he := httpError(err)
		l.Warn("get_item_error", "status", he.Code, "error", err)
		return he
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.ItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Svc.UpdateItem(ctx, id, req)
	if err != nil {
		he := httpError(err)
		l.Warn("update_item_error", "status", he.Code, "error", err)
		return he
	}

	h.indexItem(c, *item)
	h.Publish(c, "catalog_events", fmt.Sprint(item.ID), map[string]interface{}{
		"type":    "item_updated",
		"item_id": item.ID,
		"name":    item.Name,
	})

	l.Info("update_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeactivateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.deactivate_item")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeactivateItem(ctx, id); err != nil {
		he := httpError(err)
		l.Warn("deactivate_item_error", "status", he.Code, "error", err)
		return he
	}

	h.dropItem(c, id)
	h.Publish(c, "catalog_events", fmt.Sprint(id), map[string]interface{}{
		"type":    "item_deactivated",
		"item_id": id,
	})

	l.Info("deactivate_item_success", "item_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "item deactivated"})
}

func (h *CatalogHTTP) PatchInventory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_inventory")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.InventoryPatchRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_inventory_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inv, err := h.Svc.PatchInventory(ctx, id, *req.Stock)
	if err != nil {
		he := httpError(err)
		l.Warn("patch_inventory_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("patch_inventory_success", "item_id", id, "stock", inv.Stock)
	return c.JSON(http.StatusOK, inv)
}

// SearchItems queries Elasticsearch. Only routed when a client is
// configured.
func (h *CatalogHTTP) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_items")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, items, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_items_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

// indexItem and dropItem keep the search index in sync, best effort.
func (h *CatalogHTTP) indexItem(c echo.Context, item models.Item) {
	if h.ES == nil {
		return
	}
	if err := search.IndexItem(c.Request().Context(), h.ES, h.Index, item); err != nil {
		logging.FromContext(c.Request().Context()).Warn("es_index_error", "item_id", item.ID, "error", err)
	}
}

func (h *CatalogHTTP) dropItem(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	if err := search.DeleteItem(c.Request().Context(), h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Warn("es_delete_error", "item_id", id, "error", err)
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
