package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"token-relay/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Backend failures keep the backend's message; subtypes are not
// distinguished.
func mapDomainError(err error) *echo.HTTPError {
	var backendErr *domain.BackendError

	switch {
	case errors.Is(err, domain.ErrMissingUID):
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrMissingUID.Error()).SetInternal(err)

	case errors.Is(err, domain.ErrInvalidRequestBody):
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidRequestBody.Error()).SetInternal(err)

	case errors.As(err, &backendErr):
		return echo.NewHTTPError(http.StatusInternalServerError, backendErr.Error()).SetInternal(err)

	case errors.Is(err, domain.ErrBackendFailure):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, domain.ErrRateLimited.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}

// ErrorHandler renders every error as {"error": "<message>"}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = http.StatusText(code)
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, domain.ErrorResponse{Error: message})
	}
	if writeErr != nil {
		slog.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
	}
}
