package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"token-relay/internal/domain"
	"token-relay/internal/domain/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// blockingMinter waits for the context to end, like a hung backend.
type blockingMinter struct{}

func (blockingMinter) MintCustomToken(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// echoMinter returns a token derived from the uid.
type echoMinter struct{}

func (echoMinter) MintCustomToken(_ context.Context, uid string) (string, error) {
	return "token-for-" + uid, nil
}

func TestMintCustomToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	minter := mocks.NewMockCustomTokenMinter(ctrl)
	minter.EXPECT().
		MintCustomToken(gomock.Any(), "user123").
		Return("opaque-token", nil)

	uc := NewMintCustomToken(minter, time.Second, slog.Default())
	token, err := uc.Execute(context.Background(), "user123")

	assert.NoError(t, err)
	assert.Equal(t, "opaque-token", token)
}

func TestMintCustomToken_MissingUID_NeverCallsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	minter := mocks.NewMockCustomTokenMinter(ctrl)
	minter.EXPECT().MintCustomToken(gomock.Any(), gomock.Any()).Times(0)

	uc := NewMintCustomToken(minter, time.Second, slog.Default())
	token, err := uc.Execute(context.Background(), "")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrMissingUID)
}

func TestMintCustomToken_BackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	minter := mocks.NewMockCustomTokenMinter(ctrl)
	minter.EXPECT().
		MintCustomToken(gomock.Any(), "user123").
		Return("", errors.New("credential implementation provided to initializeApp() is invalid"))

	uc := NewMintCustomToken(minter, time.Second, slog.Default())
	token, err := uc.Execute(context.Background(), "user123")

	assert.Empty(t, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendFailure)

	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "credential implementation provided to initializeApp() is invalid", backendErr.Error())
}

func TestMintCustomToken_EmptyTokenIsBackendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	minter := mocks.NewMockCustomTokenMinter(ctrl)
	minter.EXPECT().MintCustomToken(gomock.Any(), "user123").Return("", nil)

	uc := NewMintCustomToken(minter, time.Second, slog.Default())
	_, err := uc.Execute(context.Background(), "user123")

	assert.ErrorIs(t, err, domain.ErrBackendFailure)
}

func TestMintCustomToken_AppliesTimeout(t *testing.T) {
	uc := NewMintCustomToken(blockingMinter{}, 20*time.Millisecond, slog.Default())

	start := time.Now()
	_, err := uc.Execute(context.Background(), "user123")

	assert.ErrorIs(t, err, domain.ErrBackendFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMintCustomToken_DeadlineReachesBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	minter := mocks.NewMockCustomTokenMinter(ctrl)
	minter.EXPECT().
		MintCustomToken(gomock.Any(), "user123").
		DoAndReturn(func(ctx context.Context, _ string) (string, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "backend call must carry a deadline")
			return "tok", nil
		})

	uc := NewMintCustomToken(minter, time.Second, slog.Default())
	_, err := uc.Execute(context.Background(), "user123")
	assert.NoError(t, err)
}

func TestMintCustomToken_ConcurrentRequestsAreIndependent(t *testing.T) {
	uc := NewMintCustomToken(echoMinter{}, time.Second, slog.Default())

	const n = 50
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)

	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	for i := range n {
		assert.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("token-for-user-%d", i), results[i])
	}
}
