package credential

import (
	"encoding/json"
	"fmt"
	"os"

	"token-relay/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// LoadServiceAccountFile reads and validates a service-account key file.
func LoadServiceAccountFile(path string) (*domain.ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}
	return ParseServiceAccount(data)
}

// ParseServiceAccount decodes a service-account key and its RSA signing key.
func ParseServiceAccount(data []byte) (*domain.ServiceAccount, error) {
	var sa domain.ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}

	if sa.Type != domain.ServiceAccountType {
		return nil, fmt.Errorf("%w: type must be %q, got %q", domain.ErrInvalidCredential, domain.ServiceAccountType, sa.Type)
	}
	if sa.ClientEmail == "" {
		return nil, fmt.Errorf("%w: client_email is empty", domain.ErrInvalidCredential)
	}
	if sa.PrivateKey == "" {
		return nil, fmt.Errorf("%w: private_key is empty", domain.ErrInvalidCredential)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: private_key: %w", domain.ErrInvalidCredential, err)
	}

	sa.Key = key
	sa.Raw = data
	return &sa, nil
}
