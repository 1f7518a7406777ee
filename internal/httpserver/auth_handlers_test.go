package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/transport"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "Aruzhan",
		"email":    "aruzhan@example.com",
		"password": "password",
		"role":     "customer",
	}

	rec := env.doJSONRequest(http.MethodPost, "/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decodeJSON[models.User](t, rec)
	require.Equal(t, "Aruzhan", user.Name)
	require.Equal(t, models.RoleCustomer, user.Role)
	require.NotEmpty(t, user.ID)
	require.NotContains(t, rec.Body.String(), "password")

	rec = env.doJSONRequest(http.MethodPost, "/auth/register", payload, "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "Nobody",
		"email":    "nobody@example.com",
		"password": "password",
		"role":     "admin",
	}

	rec := env.doJSONRequest(http.MethodPost, "/auth/register", payload, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.newUser(models.RoleStaff)

	rec := env.doJSONRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": user.Email,
		"password": "password",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[transport.TokenResponse](t, rec)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.newUser(models.RoleCustomer)

	rec := env.doJSONRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": user.Email,
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": "ghost@example.com",
		"password": "password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsersManagerOnly(t *testing.T) {
	env := newTestEnv(t)
	_, customerTok := env.newUser(models.RoleCustomer)
	_, managerTok := env.newUser(models.RoleManager)

	rec := env.doJSONRequest(http.MethodGet, "/auth/users", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/auth/users", nil, customerTok)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/auth/users", nil, managerTok)
	require.Equal(t, http.StatusOK, rec.Code)

	users := decodeJSON[[]models.User](t, rec)
	require.Len(t, users, 2)
	require.NotContains(t, rec.Body.String(), "password")
}
