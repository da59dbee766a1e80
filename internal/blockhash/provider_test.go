package blockhash_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/blockhash"
	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/mocks"
)

const (
	endpointA = "https://rpc-a.example"
	endpointB = "https://rpc-b.example"
	endpointC = "https://rpc-c.example"
)

var errForbidden = &adapter.HTTPStatusError{StatusCode: 403, Body: "forbidden"}

// testProviderMocks contains all the mocks needed for testing the blockhash provider
type testProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockhashFetcher
	clock    *mocks.MockClock
	provider blockhash.Provider
}

func setupTest(t *testing.T, sandbox bool) *testProviderMocks {
	ctrl := gomock.NewController(t)
	mockFetcher := mocks.NewMockBlockhashFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := blockhash.NewProvider(mockFetcher, blockhash.Config{
		Endpoints:       []string{endpointA, endpointB, endpointC},
		TTL:             30 * time.Second,
		RetryPause:      2 * time.Second,
		FinalRetryPause: 5 * time.Second,
		Sandbox:         sandbox,
	}, mockClock)

	return &testProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: provider,
	}
}

func tearDownTest(tm *testProviderMocks) {
	tm.ctrl.Finish()
}

// fired returns a channel that is immediately ready
func fired() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestProvider_GetBlockhash_FirstFetch(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("hash-1", nil)
	tm.clock.EXPECT().Now().Return(now)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)
}

func TestProvider_GetBlockhash_CacheTTL(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("hash-1", nil),
		tm.clock.EXPECT().Now().Return(t0),
		// within the TTL the network is never touched
		tm.clock.EXPECT().Now().Return(t0.Add(29*time.Second)),
		// at the TTL boundary the cache is stale
		tm.clock.EXPECT().Now().Return(t0.Add(30*time.Second)),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("hash-2", nil),
		tm.clock.EXPECT().Now().Return(t0.Add(30*time.Second)),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)

	hash, err = tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)

	hash, err = tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", hash)
}

func TestProvider_GetBlockhash_InsufficientFundsAborts(t *testing.T) {
	tm := setupTest(t, true)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.fetcher.EXPECT().
		GetLatestBlockhash(ctx, endpointA).
		Return("", errors.New("Transaction simulation failed: Attempt to debit an account but found no record of a prior credit."))

	// no pause and no further endpoints
	hash, err := tm.provider.GetBlockhash(ctx)
	assert.Empty(t, hash)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestProvider_GetBlockhash_TransportAdvances(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointB).Return("hash-b", nil),
		tm.clock.EXPECT().Now().Return(now),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-b", hash)
}

func TestProvider_GetBlockhash_UnknownAdvances(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errors.New("something odd")),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointB).Return("hash-b", nil),
		tm.clock.EXPECT().Now().Return(now),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-b", hash)
}

func TestProvider_GetBlockhash_FinalRetrySucceeds(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointB).Return("", context.DeadlineExceeded),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointC).Return("", errors.New("connection refused")),
		tm.clock.EXPECT().After(5*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("hash-final", nil),
		tm.clock.EXPECT().Now().Return(now),
		// cached
		tm.clock.EXPECT().Now().Return(now.Add(time.Second)),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-final", hash)

	hash, err = tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-final", hash)
}

func TestProvider_GetBlockhash_AllFail(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx := context.Background()

	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointB).Return("", errForbidden),
		tm.clock.EXPECT().After(2*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointC).Return("", errForbidden),
		tm.clock.EXPECT().After(5*time.Second).Return(fired()),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	assert.Empty(t, hash)
	assert.ErrorIs(t, err, domain.ErrBlockhashUnavailable)
}

func TestProvider_GetBlockhash_SandboxPlaceholder(t *testing.T) {
	tm := setupTest(t, true)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(time.Duration) <-chan time.Time {
		return fired()
	}).Times(3)
	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointB).Return("", errForbidden),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointC).Return("", errForbidden),
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("", errForbidden),
		// the placeholder is not cached, so the next call goes to the network
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).Return("hash-real", nil),
		tm.clock.EXPECT().Now().Return(now),
	)

	hash, err := tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, blockhash.DefaultPlaceholder, hash)

	hash, err = tm.provider.GetBlockhash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-real", hash)
}

func TestProvider_GetBlockhash_ContextCanceled(t *testing.T) {
	tm := setupTest(t, false)
	defer tearDownTest(tm)

	ctx, cancel := context.WithCancel(context.Background())

	never := make(chan time.Time)
	gomock.InOrder(
		tm.fetcher.EXPECT().GetLatestBlockhash(ctx, endpointA).DoAndReturn(
			func(ctx context.Context, endpoint string) (string, error) {
				return "", errForbidden
			}),
		tm.clock.EXPECT().After(2*time.Second).DoAndReturn(func(d time.Duration) <-chan time.Time {
			cancel()
			return never
		}),
	)

	_, err := tm.provider.GetBlockhash(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_GetBlockhash_NoEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := blockhash.NewProvider(mocks.NewMockBlockhashFetcher(ctrl), blockhash.Config{TTL: time.Second}, mocks.NewMockClock(ctrl))

	_, err := provider.GetBlockhash(context.Background())
	assert.ErrorIs(t, err, domain.ErrBlockhashUnavailable)
}
