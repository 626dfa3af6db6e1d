package token

import (
	"context"
	"errors"
	"time"

	"token-relay/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// CustomTokenAudience is the audience the identity backend expects on
// custom tokens.
const CustomTokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

const maxUIDLength = 128

var (
	errEmptyUID   = errors.New("uid must be a non-empty string")
	errUIDTooLong = errors.New("uid must not be longer than 128 characters")
)

// customTokenClaims represents the JWT claims of a custom token.
type customTokenClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// JWTSigner signs custom tokens locally with the service-account key.
// Implements domain.CustomTokenMinter.
type JWTSigner struct {
	account *domain.ServiceAccount
	ttl     time.Duration
	now     func() time.Time
}

// NewJWTSigner creates a new signer. The account must carry a decoded key.
func NewJWTSigner(account *domain.ServiceAccount, ttl time.Duration) *JWTSigner {
	return &JWTSigner{account: account, ttl: ttl, now: time.Now}
}

// MintCustomToken generates an RS256 custom token for uid.
func (s *JWTSigner) MintCustomToken(ctx context.Context, uid string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if uid == "" {
		return "", errEmptyUID
	}
	if len(uid) > maxUIDLength {
		return "", errUIDTooLong
	}

	now := s.now()
	claims := customTokenClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.account.ClientEmail,
			Subject:   s.account.ClientEmail,
			Audience:  jwt.ClaimStrings{CustomTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.account.PrivateKeyID != "" {
		token.Header["kid"] = s.account.PrivateKeyID
	}
	return token.SignedString(s.account.Key)
}
