package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aqynbek/restaurant-backoffice/internal/config"
	"github.com/aqynbek/restaurant-backoffice/internal/hash"
	"github.com/aqynbek/restaurant-backoffice/internal/httpserver"
	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/token"
	"github.com/aqynbek/restaurant-backoffice/internal/validation"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Secret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and
	// serializes concurrent transactions
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	e := echo.New()
	e.Validator = validation.New()

	secret := []byte("test-secret")
	httpserver.Register(e, &httpserver.Deps{DB: db, JWTSecret: secret})

	return &testEnv{T: t, E: e, DB: db, Secret: secret}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	env.T.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) newUser(role models.Role) (models.User, string) {
	env.T.Helper()

	hashed, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Name:         fmt.Sprintf("%s user", role),
		Email:        fmt.Sprintf("%s_%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: hashed,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	bearer, err := token.Sign(user.ID, role, env.Secret)
	require.NoError(env.T, err)

	return user, bearer
}

func (env *testEnv) newItem(name, price string, stock int) models.Item {
	env.T.Helper()

	item := models.Item{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "food",
		IsActive: true,
	}
	require.NoError(env.T, env.DB.Create(&item).Error)
	require.NoError(env.T, env.DB.Create(&models.Inventory{
		ItemID: item.ID,
		Stock:  stock,
		Unit:   "pcs",
	}).Error)

	return item
}

func (env *testEnv) stockOf(itemID uint) int {
	env.T.Helper()

	var inv models.Inventory
	require.NoError(env.T, env.DB.Where("item_id = ?", itemID).First(&inv).Error)
	return inv.Stock
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
