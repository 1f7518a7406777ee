package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
	"github.com/aqynbek/restaurant-backoffice/internal/token"
)

// Authenticate validates the bearer token and puts the caller's id
// and role into the request context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, role, err := token.Parse(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("userID", userID)
			c.Set("role", role)
			return next(c)
		}
	}
}

// RequireRoles gates a route to the allowed role set. Must run after
// Authenticate.
func RequireRoles(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(models.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if !role.AllowedFor(allowed...) {
				return echo.NewHTTPError(http.StatusForbidden, "not allowed")
			}
			return next(c)
		}
	}
}

func callerID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func callerRole(c echo.Context) (models.Role, bool) {
	role, ok := c.Get("role").(models.Role)
	return role, ok
}
