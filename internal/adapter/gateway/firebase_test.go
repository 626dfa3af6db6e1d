package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"token-relay/internal/infrastructure/credential"
	"token-relay/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCustomTokenClient implements customTokenClient for testing.
type fakeCustomTokenClient struct {
	token  string
	err    error
	gotUID string
}

func (f *fakeCustomTokenClient) CustomToken(_ context.Context, uid string) (string, error) {
	f.gotUID = uid
	return f.token, f.err
}

func TestFirebaseMinter_PassesTokenThrough(t *testing.T) {
	client := &fakeCustomTokenClient{token: "opaque.signed.token"}
	minter := &FirebaseMinter{client: client}

	token, err := minter.MintCustomToken(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, "opaque.signed.token", token)
	assert.Equal(t, "user123", client.gotUID)
}

func TestFirebaseMinter_ReturnsBackendError(t *testing.T) {
	client := &fakeCustomTokenClient{err: errors.New("quota exceeded")}
	minter := &FirebaseMinter{client: client}

	token, err := minter.MintCustomToken(context.Background(), "user123")

	assert.Empty(t, token)
	assert.EqualError(t, err, "quota exceeded")
}

func TestFirebaseMinter_SDKSignsWithServiceAccount(t *testing.T) {
	key := testutil.RSAKey(t)
	account, err := credential.ParseServiceAccount(testutil.ServiceAccountJSON(t, key))
	require.NoError(t, err)

	minter, err := NewFirebaseMinter(context.Background(), account, "")
	require.NoError(t, err)

	token, err := minter.MintCustomToken(context.Background(), "user123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "user123", claims["uid"])
	assert.Equal(t, testutil.TestClientEmail, claims["iss"])
}

func TestFirebaseMinter_SDKRejectsLongUID(t *testing.T) {
	key := testutil.RSAKey(t)
	account, err := credential.ParseServiceAccount(testutil.ServiceAccountJSON(t, key))
	require.NoError(t, err)

	minter, err := NewFirebaseMinter(context.Background(), account, "override-project")
	require.NoError(t, err)

	token, err := minter.MintCustomToken(context.Background(), strings.Repeat("x", 200))
	assert.Empty(t, token)
	assert.Error(t, err)
}
