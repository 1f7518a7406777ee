package httpserver_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
)

func TestCreateItemCreatesInventory(t *testing.T) {
	env := newTestEnv(t)
	_, managerTok := env.newUser(models.RoleManager)

	payload := map[string]interface{}{
		"name":        "Burger",
		"description": "beef, classic",
		"price":       5.00,
		"category":    "mains",
	}

	rec := env.doJSONRequest(http.MethodPost, "/items", payload, managerTok)
	require.Equal(t, http.StatusCreated, rec.Code)

	item := decodeJSON[models.Item](t, rec)
	require.Equal(t, "Burger", item.Name)
	require.True(t, item.IsActive)
	require.True(t, item.Price.Equal(decimal.RequireFromString("5")))

	var inv models.Inventory
	require.NoError(t, env.DB.Where("item_id = ?", item.ID).First(&inv).Error)
	require.Equal(t, 0, inv.Stock)
	require.Equal(t, "pcs", inv.Unit)
}

func TestCreateItemRequiresManager(t *testing.T) {
	env := newTestEnv(t)
	_, customerTok := env.newUser(models.RoleCustomer)
	_, staffTok := env.newUser(models.RoleStaff)

	payload := map[string]interface{}{"name": "Soda", "price": 1.50}

	rec := env.doJSONRequest(http.MethodPost, "/items", payload, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/items", payload, customerTok)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/items", payload, staffTok)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListItemsExcludesInactive(t *testing.T) {
	env := newTestEnv(t)
	env.newItem("Burger", "5.00", 10)
	fries := env.newItem("Fries", "2.50", 10)

	require.NoError(t, env.DB.Model(&models.Item{}).
		Where("id = ?", fries.ID).
		Update("is_active", false).Error)

	rec := env.doJSONRequest(http.MethodGet, "/items", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeJSON[[]models.Item](t, rec)
	require.Len(t, items, 1)
	require.Equal(t, "Burger", items[0].Name)
}

func TestGetItem(t *testing.T) {
	env := newTestEnv(t)
	item := env.newItem("Burger", "5.00", 10)

	rec := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeJSON[models.Item](t, rec)
	require.Equal(t, item.ID, got.ID)

	rec = env.doJSONRequest(http.MethodGet, "/items/9999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	_, managerTok := env.newUser(models.RoleManager)
	item := env.newItem("Burger", "5.00", 10)

	payload := map[string]interface{}{
		"name":        "Double Burger",
		"description": "two patties",
		"price":       7.50,
		"category":    "mains",
	}

	rec := env.doJSONRequest(http.MethodPut, fmt.Sprintf("/items/%d", item.ID), payload, managerTok)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeJSON[models.Item](t, rec)
	require.Equal(t, "Double Burger", got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("7.5")))

	rec = env.doJSONRequest(http.MethodPut, "/items/9999", payload, managerTok)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeactivateItem(t *testing.T) {
	env := newTestEnv(t)
	_, managerTok := env.newUser(models.RoleManager)
	item := env.newItem("Burger", "5.00", 10)

	rec := env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/items/%d", item.ID), nil, managerTok)
	require.Equal(t, http.StatusOK, rec.Code)

	// soft delete: hidden from the catalog surface
	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/items/%d", item.ID), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// but the row and its inventory survive
	var got models.Item
	require.NoError(t, env.DB.First(&got, item.ID).Error)
	require.False(t, got.IsActive)
	require.Equal(t, 10, env.stockOf(item.ID))
}

func TestPatchInventory(t *testing.T) {
	env := newTestEnv(t)
	_, managerTok := env.newUser(models.RoleManager)
	item := env.newItem("Burger", "5.00", 3)

	rec := env.doJSONRequest(http.MethodPatch, fmt.Sprintf("/items/inventory/%d", item.ID),
		map[string]int{"stock": 42}, managerTok)
	require.Equal(t, http.StatusOK, rec.Code)

	inv := decodeJSON[models.Inventory](t, rec)
	require.Equal(t, 42, inv.Stock)
	require.Equal(t, 42, env.stockOf(item.ID))

	rec = env.doJSONRequest(http.MethodPatch, "/items/inventory/9999",
		map[string]int{"stock": 5}, managerTok)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
