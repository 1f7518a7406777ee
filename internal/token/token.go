package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aqynbek/restaurant-backoffice/internal/models"
)

// AccessTTL is how long an issued bearer token stays valid.
const AccessTTL = 12 * time.Hour

var ErrInvalid = errors.New("invalid token")

// Sign issues an HS256 bearer token carrying the user id and role.
func Sign(userID uint, role models.Role, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Parse validates a bearer token and returns the carried identity.
func Parse(raw string, secret []byte) (uint, models.Role, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, "", ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalid
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", ErrInvalid
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return 0, "", ErrInvalid
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return 0, "", ErrInvalid
	}

	return uint(sub), role, nil
}
