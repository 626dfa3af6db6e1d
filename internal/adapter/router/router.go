package router

import (
	"log/slog"
	"net"

	"token-relay/internal/adapter/handler"
	appmiddleware "token-relay/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// Config holds router dependencies.
type Config struct {
	CustomTokenHandler *handler.CustomTokenHandler
	HealthHandler      *handler.HealthHandler

	// RateLimiter guards /createCustomToken when non-nil.
	RateLimiter *appmiddleware.RateLimiter
	// SharedSecret, when set, must be presented by callers of /createCustomToken.
	SharedSecret string
	// TrustedProxies are the only peers whose X-Forwarded-For is used for the
	// client IP. Empty means the TCP peer address is the client IP.
	TrustedProxies []*net.IPNet

	EnableTracing bool
	ServiceName   string
}

// New creates the echo instance with middleware and routes.
func New(cfg Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.JSONSerializer = handler.JSONSerializer{}
	e.IPExtractor = ipExtractor(cfg.TrustedProxies)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(appmiddleware.SecurityHeaders())

	if cfg.EnableTracing {
		e.Use(otelecho.Middleware(cfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"remote_ip", v.RemoteIP,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"remote_ip", v.RemoteIP,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	var tokenMiddleware []echo.MiddlewareFunc
	if cfg.RateLimiter != nil {
		tokenMiddleware = append(tokenMiddleware, cfg.RateLimiter.Middleware())
	}
	if cfg.SharedSecret != "" {
		tokenMiddleware = append(tokenMiddleware, appmiddleware.RelayAuth(cfg.SharedSecret))
	}

	e.POST("/createCustomToken", cfg.CustomTokenHandler.Handle, tokenMiddleware...)
	e.GET("/health", cfg.HealthHandler.Handle)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// ipExtractor keys rate limiting and logs on the peer address unless the
// peer is a configured proxy. Echo's default trusts forwarding headers from
// anyone.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trusted {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
