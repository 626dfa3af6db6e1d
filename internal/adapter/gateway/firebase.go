package gateway

import (
	"context"
	"fmt"

	"token-relay/internal/domain"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// customTokenClient is the subset of *auth.Client the minter uses.
type customTokenClient interface {
	CustomToken(ctx context.Context, uid string) (string, error)
}

// FirebaseMinter implements domain.CustomTokenMinter on top of the
// Firebase Admin SDK.
type FirebaseMinter struct {
	client customTokenClient
}

// NewFirebaseMinter initializes the Admin SDK from the service account.
// projectID overrides the credential's project when set.
func NewFirebaseMinter(ctx context.Context, account *domain.ServiceAccount, projectID string) (*FirebaseMinter, error) {
	if projectID == "" {
		projectID = account.ProjectID
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsJSON(account.Raw))
	if err != nil {
		return nil, fmt.Errorf("%w: firebase app: %w", domain.ErrInvalidCredential, err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: firebase auth client: %w", domain.ErrInvalidCredential, err)
	}

	return &FirebaseMinter{client: client}, nil
}

// MintCustomToken asks the identity backend for a custom token.
func (m *FirebaseMinter) MintCustomToken(ctx context.Context, uid string) (string, error) {
	return m.client.CustomToken(ctx, uid)
}
