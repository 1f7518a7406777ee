package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aqynbek/restaurant-backoffice/internal/service"
)

var sentinels = []error{
	service.ErrValidation,
	service.ErrUnauthorized,
	service.ErrForbidden,
	service.ErrNotFound,
	service.ErrConflict,
}

// httpError maps service sentinels onto HTTP status codes. Anything
// unrecognized is a 500 with a generic message.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, reason(err))
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, reason(err))
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, reason(err))
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, reason(err))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, reason(err))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// reason strips the sentinel prefix so responses carry only the
// human-readable part.
func reason(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		msg = strings.TrimPrefix(msg, s.Error()+": ")
	}
	return msg
}
