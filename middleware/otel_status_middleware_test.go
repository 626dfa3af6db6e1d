package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(spanRecorder),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tracerProvider)
	t.Cleanup(func() { otel.SetTracerProvider(originalProvider) })

	return spanRecorder
}

func TestOTelStatusMiddleware(t *testing.T) {
	backendErr := errors.New("identity backend unreachable")

	tests := []struct {
		name          string
		handler       echo.HandlerFunc
		wantErr       error
		wantCode      int
		wantStatus    codes.Code
		wantException bool
	}{
		{
			name: "2xx leaves status unset",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"customToken": "tok"})
			},
			wantCode:   http.StatusOK,
			wantStatus: codes.Unset,
		},
		{
			name: "4xx leaves status unset",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing uid"})
			},
			wantCode:   http.StatusBadRequest,
			wantStatus: codes.Unset,
		},
		{
			name: "5xx marks span as error",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
			},
			wantCode:   http.StatusInternalServerError,
			wantStatus: codes.Error,
		},
		{
			name: "5xx with error records exception",
			handler: func(c echo.Context) error {
				c.Response().WriteHeader(http.StatusInternalServerError)
				return backendErr
			},
			wantErr:       backendErr,
			wantCode:      http.StatusInternalServerError,
			wantStatus:    codes.Error,
			wantException: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spanRecorder := setupTestTracer(t)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/createCustomToken", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ctx, span := otel.Tracer("test").Start(req.Context(), "test-span")
			c.SetRequest(req.WithContext(ctx))

			err := OTelStatusMiddleware()(tt.handler)(c)
			span.End()

			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantCode, rec.Code)

			spans := spanRecorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)

			var statusCode int64
			for _, attr := range spans[0].Attributes() {
				if string(attr.Key) == "http.response.status_code" {
					statusCode = attr.Value.AsInt64()
				}
			}
			assert.Equal(t, int64(tt.wantCode), statusCode)

			var exception bool
			for _, event := range spans[0].Events() {
				if event.Name == "exception" {
					exception = true
				}
			}
			assert.Equal(t, tt.wantException, exception)
		})
	}
}

func TestOTelStatusMiddleware_NoSpan(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := OTelStatusMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusInternalServerError)
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
