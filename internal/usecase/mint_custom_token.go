package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"token-relay/internal/domain"
	"token-relay/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errEmptyToken = errors.New("identity backend returned an empty token")

// MintCustomToken relays a mint request to the identity backend.
type MintCustomToken struct {
	minter  domain.CustomTokenMinter
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewMintCustomToken creates a new MintCustomToken usecase. timeout bounds
// every backend call.
func NewMintCustomToken(m domain.CustomTokenMinter, timeout time.Duration, l *slog.Logger) *MintCustomToken {
	return &MintCustomToken{
		minter:  m,
		timeout: timeout,
		logger:  l,
		tracer:  otel.Tracer("token-relay/usecase"),
	}
}

// Execute validates uid and mints a custom token for it. Backend failures
// come back as *domain.BackendError.
func (uc *MintCustomToken) Execute(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", domain.ErrMissingUID
	}

	ctx, span := uc.tracer.Start(ctx, "relay.mint_custom_token",
		trace.WithAttributes(attribute.Int("relay.uid_length", len(uid))))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	token, err := uc.minter.MintCustomToken(ctx, uid)
	if err == nil && token == "" {
		err = errEmptyToken
	}
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordMint(metrics.OutcomeBackendFailure, elapsed.Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity backend failure")
		// The uid is caller-controlled; log its length only.
		uc.logger.ErrorContext(ctx, "failed to mint custom token",
			"error", err,
			"uid_length", len(uid),
			"latency_ms", elapsed.Milliseconds())
		return "", &domain.BackendError{Err: err}
	}

	metrics.RecordMint(metrics.OutcomeSuccess, elapsed.Seconds())
	return token, nil
}
