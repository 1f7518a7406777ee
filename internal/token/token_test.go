package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
)

func TestSignAndParse(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := Sign(42, models.RoleManager, secret)
	require.NoError(t, err)

	userID, role, err := Parse(raw, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
	require.Equal(t, models.RoleManager, role)
}

func TestParseWrongSecret(t *testing.T) {
	raw, err := Sign(42, models.RoleStaff, []byte("one-secret"))
	require.NoError(t, err)

	_, _, err = Parse(raw, []byte("other-secret"))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseExpired(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"sub":  float64(42),
		"role": "staff",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, _, err = Parse(raw, secret)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseUnknownRole(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"sub":  float64(42),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, _, err = Parse(raw, secret)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseGarbage(t *testing.T) {
	_, _, err := Parse("not-a-token", []byte("test-secret"))
	require.ErrorIs(t, err, ErrInvalid)
}
