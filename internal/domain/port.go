package domain

import "context"

//go:generate mockgen -source=port.go -destination=mocks/mock_port.go -package=mocks

// CustomTokenMinter mints custom authentication tokens through the
// privileged identity backend. Implementations are built once at startup
// and must be safe for concurrent use.
type CustomTokenMinter interface {
	MintCustomToken(ctx context.Context, uid string) (string, error)
}
