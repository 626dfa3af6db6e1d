package main

import (
	"context"
	"fmt"
	"log/slog"

	"token-relay/config"
	"token-relay/internal/adapter/gateway"
	adapterhandler "token-relay/internal/adapter/handler"
	"token-relay/internal/adapter/router"
	"token-relay/internal/domain"
	"token-relay/internal/infrastructure/credential"
	infratoken "token-relay/internal/infrastructure/token"
	"token-relay/internal/usecase"
	"token-relay/internal/validation"
	appmiddleware "token-relay/middleware"

	"github.com/labstack/echo/v4"
)

// app is the fully wired relay.
type app struct {
	Echo        *echo.Echo
	rateLimiter *appmiddleware.RateLimiter
}

// Close releases background resources owned by the relay.
func (a *app) Close() {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
}

func newApp(ctx context.Context, cfg *config.Config, enableTracing bool, serviceName string) (*app, error) {
	uc, err := newMintUsecase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{}
	if cfg.RateLimitRPM > 0 {
		a.rateLimiter = appmiddleware.NewRateLimiterPerMinute(cfg.RateLimitRPM, cfg.RateLimitBurst)
	}

	a.Echo = router.New(router.Config{
		CustomTokenHandler: adapterhandler.NewCustomTokenHandler(uc, validation.New()),
		HealthHandler:      adapterhandler.NewHealthHandler(cfg.TokenProvider),
		RateLimiter:        a.rateLimiter,
		SharedSecret:       cfg.RelaySharedSecret,
		TrustedProxies:     cfg.TrustedProxies,
		EnableTracing:      enableTracing,
		ServiceName:        serviceName,
	})
	return a, nil
}

// newMintUsecase loads the credential and builds the configured minter.
// Any failure here is a startup failure.
func newMintUsecase(ctx context.Context, cfg *config.Config) (*usecase.MintCustomToken, error) {
	account, err := credential.LoadServiceAccountFile(cfg.ServiceAccountFile)
	if err != nil {
		return nil, err
	}

	minter, err := newMinter(ctx, cfg, account)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "token minter initialized",
		"provider", cfg.TokenProvider,
		"client_email", account.ClientEmail,
		"project_id", account.ProjectID)

	return usecase.NewMintCustomToken(minter, cfg.BackendTimeout, slog.Default()), nil
}

func newMinter(ctx context.Context, cfg *config.Config, account *domain.ServiceAccount) (domain.CustomTokenMinter, error) {
	switch cfg.TokenProvider {
	case config.ProviderFirebase:
		m, err := gateway.NewFirebaseMinter(ctx, account, cfg.FirebaseProjectID)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ProviderJWT:
		return infratoken.NewJWTSigner(account, cfg.CustomTokenTTL), nil
	default:
		return nil, fmt.Errorf("unknown token provider %q", cfg.TokenProvider)
	}
}
