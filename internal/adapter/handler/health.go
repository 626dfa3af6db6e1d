package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles liveness checks. The relay holds no connections,
// so being able to answer is the whole check.
type HealthHandler struct {
	provider string
}

// NewHealthHandler creates a new health handler reporting the active
// token provider.
func NewHealthHandler(provider string) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// Handle processes the /health endpoint.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"provider": h.provider,
	})
}
