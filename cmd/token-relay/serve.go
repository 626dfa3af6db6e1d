package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"token-relay/config"
	"token-relay/internal/domain"
	"token-relay/utils/logger"
	"token-relay/utils/otel"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// initTelemetry is swapped in tests.
var initTelemetry = otel.InitProvider

func runServe(ctx context.Context) error {
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := initTelemetry(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}
	// Runs last so startup and shutdown errors reach the exporter.
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	logger.Init(otelCfg.ServiceName, otelCfg.Enabled)

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		return err
	}

	slog.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"provider", cfg.TokenProvider,
		"backend_timeout", cfg.BackendTimeout,
		"rate_limit_rpm", cfg.RateLimitRPM,
		"trusted_proxies", len(cfg.TrustedProxies),
		"shared_secret", cfg.RelaySharedSecret != "")

	app, err := newApp(ctx, cfg, otelCfg.Enabled, otelCfg.ServiceName)
	if err != nil {
		// A relay without a usable credential must not accept traffic.
		slog.ErrorContext(ctx, "failed to initialize token minter", "error", err)
		return err
	}
	defer app.Close()

	if err := listen(ctx, app.Echo, cfg.Port); err != nil {
		slog.ErrorContext(ctx, "failed to bind port", "port", cfg.Port, "error", err)
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Start serves on the listener bound above.
		if err := app.Echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}

	slog.Info("server exited properly")
	return nil
}

// listen binds the port and hands the listener to e. The startup line is
// logged only once the bind has succeeded.
func listen(ctx context.Context, e *echo.Echo, port string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return err
	}
	e.Listener = ln

	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = strconv.Itoa(addr.Port)
	}
	slog.InfoContext(ctx, "token relay listening", "port", port)
	return nil
}

// runMint mints a single token outside the HTTP path and writes it as JSON.
func runMint(ctx context.Context, out io.Writer, uid string) error {
	// stdout carries the token
	slog.SetDefault(logger.New(os.Stderr, slog.LevelWarn, false))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	uc, err := newMintUsecase(ctx, cfg)
	if err != nil {
		return err
	}

	token, err := uc.Execute(ctx, uid)
	if err != nil {
		return err
	}

	return json.NewEncoder(out).Encode(domain.TokenResponse{CustomToken: token})
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck(ctx context.Context, port string) error {
	if port == "" {
		port = "5000"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://127.0.0.1:%s/health", port), nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
