package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RelayAuthHeader carries the caller's shared secret.
const RelayAuthHeader = "X-Relay-Auth"

// RelayAuth rejects requests that do not present sharedSecret in
// RelayAuthHeader. Comparison is constant-time.
func RelayAuth(sharedSecret string) echo.MiddlewareFunc {
	secretBytes := []byte(sharedSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := []byte(c.Request().Header.Get(RelayAuthHeader))
			if len(provided) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing relay auth header")
			}
			if subtle.ConstantTimeCompare(provided, secretBytes) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid relay auth")
			}
			return next(c)
		}
	}
}
