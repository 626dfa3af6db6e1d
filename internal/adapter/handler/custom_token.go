package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"token-relay/internal/domain"
	"token-relay/internal/usecase"
	"token-relay/internal/validation"
	"token-relay/metrics"
	"token-relay/utils/logger"

	"github.com/labstack/echo/v4"
)

// CustomTokenHandler handles POST /createCustomToken.
type CustomTokenHandler struct {
	uc        *usecase.MintCustomToken
	validator *validation.Validator
}

// NewCustomTokenHandler creates a new custom token handler.
func NewCustomTokenHandler(uc *usecase.MintCustomToken, v *validation.Validator) *CustomTokenHandler {
	return &CustomTokenHandler{uc: uc, validator: v}
}

// Handle mints a custom token for the uid in the request body.
func (h *CustomTokenHandler) Handle(c echo.Context) error {
	req, err := bindTokenRequest(c)
	if err != nil {
		return h.reject(fmt.Errorf("%w: %w", domain.ErrInvalidRequestBody, err))
	}

	if err := h.validator.Validate(&req); err != nil {
		return h.reject(fmt.Errorf("%w: %w", domain.ErrMissingUID, err))
	}

	ctx := logger.WithRequestID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
	ctx = logger.WithOperation(ctx, "create_custom_token")

	token, err := h.uc.Execute(ctx, req.UID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, domain.TokenResponse{CustomToken: token})
}

// bindTokenRequest decodes JSON bodies only. A body of any other content
// type, or none at all, is read as an empty request.
func bindTokenRequest(c echo.Context) (domain.TokenRequest, error) {
	var req domain.TokenRequest

	mediaType, _, _ := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if mediaType != echo.MIMEApplicationJSON || c.Request().ContentLength == 0 {
		return req, nil
	}

	err := c.Echo().JSONSerializer.Deserialize(c, &req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	return req, err
}

func (h *CustomTokenHandler) reject(err error) error {
	metrics.RecordInvalidRequest()
	return mapDomainError(err)
}
