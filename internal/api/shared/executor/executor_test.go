package executor_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mr-tron/base58"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosiol/sosiol/internal/api/shared/dto"
	apierrors "github.com/sosiol/sosiol/internal/api/shared/errors"
	"github.com/sosiol/sosiol/internal/api/shared/executor"
	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/metrics"
	"github.com/sosiol/sosiol/internal/mocks"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/store"
	"github.com/sosiol/sosiol/internal/store/schema"
	"github.com/sosiol/sosiol/internal/upload"
	"github.com/sosiol/sosiol/internal/verifier"
)

// pngHeader is enough for MIME sniffing to report image/png
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

var errConnectionLost = errors.New("pq: connection lost to 10.0.0.5")

type testExecutorMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	payments     *mocks.MockPaymentVerifier
	transactions *mocks.MockTransactionFetcher
	storage      *mocks.MockUploadStorage
	metrics      *metrics.Metrics
	executor     executor.Executor
}

func setupTest(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		payments:     mocks.NewMockPaymentVerifier(ctrl),
		transactions: mocks.NewMockTransactionFetcher(ctrl),
		storage:      mocks.NewMockUploadStorage(ctrl),
		metrics:      metrics.New(),
	}
	tm.executor = executor.NewExecutor(tm.store, tm.payments, tm.transactions, upload.NewUploader(tm.storage, 1024), tm.metrics)
	return tm
}

func tearDownTest(tm *testExecutorMocks) {
	tm.ctrl.Finish()
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func tipRequest(from, to string, amount float64, signature string) dto.CreateTipRequest {
	return dto.CreateTipRequest{
		FromWallet:           from,
		ToCreatorWallet:      to,
		AmountUSDC:           &amount,
		TransactionSignature: signature,
	}
}

func tipFromInput(input store.CreateTipInput) *schema.Tip {
	return &schema.Tip{
		ID:                   1,
		FromWallet:           input.FromWallet,
		ToCreatorWallet:      input.ToCreatorWallet,
		AmountUSDC:           input.AmountUSDC,
		TransactionSignature: input.TransactionSignature,
		Message:              input.Message,
		Status:               input.Status,
	}
}

func TestRecordTip_StoresVerifiedStatus(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.store.EXPECT().GetTipBySignature(ctx, "sig-1").Return(nil, nil)
	tm.payments.EXPECT().Verify(ctx, verifier.Payment{
		Signature:  "sig-1",
		FromWallet: "fan",
		ToWallet:   "creator",
		AmountUSDC: 2.5,
	}).Return(domain.TipStatusPending)
	tm.store.EXPECT().CreateTip(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateTipInput) (*schema.Tip, bool, error) {
			assert.Equal(t, domain.TipStatusPending, input.Status)
			assert.Equal(t, 2.5, input.AmountUSDC)
			return tipFromInput(input), true, nil
		})

	tip, created, err := tm.executor.RecordTip(ctx, tipRequest("fan", "creator", 2.5, "sig-1"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "pending", tip.Status)

	count, err := testutil.GatherAndCount(tm.metrics.Registry(), "sosiol_tips_recorded_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordTip_ReplayDoesNotVerify(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	stored := &schema.Tip{
		ID:                   7,
		FromWallet:           "fan",
		ToCreatorWallet:      "creator",
		AmountUSDC:           1,
		TransactionSignature: "sig-1",
		Status:               domain.TipStatusCompleted,
	}

	tm.store.EXPECT().GetTipBySignature(ctx, "sig-1").Return(stored, nil)
	tm.payments.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)
	tm.store.EXPECT().CreateTip(gomock.Any(), gomock.Any()).Times(0)

	tip, created, err := tm.executor.RecordTip(ctx, tipRequest("fan", "creator", 1, "sig-1"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint64(7), tip.ID)

	count, err := testutil.GatherAndCount(tm.metrics.Registry(), "sosiol_tips_recorded_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordTip_ConcurrentDuplicate(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	// Another request inserted the signature between the lookup and the insert
	tm.store.EXPECT().GetTipBySignature(ctx, "sig-1").Return(nil, nil)
	tm.payments.EXPECT().Verify(ctx, gomock.Any()).Return(domain.TipStatusCompleted)
	tm.store.EXPECT().CreateTip(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateTipInput) (*schema.Tip, bool, error) {
			return tipFromInput(input), false, nil
		})

	_, created, err := tm.executor.RecordTip(ctx, tipRequest("fan", "creator", 1, "sig-1"))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRecordTip_SelfTip(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	_, _, err := tm.executor.RecordTip(context.Background(), tipRequest("same", "same", 1, "sig-1"))
	requireAPIError(t, err, apierrors.ErrCodeBadRequest)
}

func TestRecordTip_Validation(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	_, _, err := tm.executor.RecordTip(context.Background(), dto.CreateTipRequest{})
	apiErr := requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	assert.Contains(t, apiErr.Details, "amountUSDC")
}

func TestRecordTip_UnknownRecipient(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.store.EXPECT().GetTipBySignature(ctx, "sig-1").Return(nil, nil)
	tm.payments.EXPECT().Verify(ctx, gomock.Any()).Return(domain.TipStatusCompleted)
	tm.store.EXPECT().CreateTip(ctx, gomock.Any()).Return(nil, false, domain.ErrCreatorNotFound)

	_, _, err := tm.executor.RecordTip(ctx, tipRequest("fan", "ghost", 1, "sig-1"))
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestRecordTip_DatabaseErrorIsNotLeaked(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.store.EXPECT().GetTipBySignature(ctx, "sig-1").Return(nil, errConnectionLost)

	_, _, err := tm.executor.RecordTip(ctx, tipRequest("fan", "creator", 1, "sig-1"))
	apiErr := requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
	assert.NotContains(t, apiErr.Message, "10.0.0.5")
	assert.NotContains(t, apiErr.Details, "10.0.0.5")
}

func TestUpsertCreator_InvalidSignature(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	// A signature that fails verification never reaches the store
	tm.store.EXPECT().UpsertCreator(gomock.Any(), gomock.Any()).Times(0)

	_, err := tm.executor.UpsertCreator(context.Background(), dto.UpsertCreatorRequest{
		WalletAddress: "11111111111111111111111111111111",
		Username:      "alice",
		DisplayName:   "Alice",
		Signature:     "bad",
		Message:       "hello",
	})
	requireAPIError(t, err, apierrors.ErrCodeUnauthorized)
}

func TestGetCreatorByUsername(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	_, err := tm.executor.GetCreatorByUsername(ctx, "ab")
	requireAPIError(t, err, apierrors.ErrCodeBadRequest)

	tm.store.EXPECT().GetCreatorByUsername(ctx, "alice").Return(&schema.Creator{
		WalletAddress: "wallet",
		Username:      "alice",
		DisplayName:   "Alice",
	}, nil)
	creator, err := tm.executor.GetCreatorByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", creator.Username)

	tm.store.EXPECT().GetCreatorByUsername(ctx, "nobody").Return(nil, nil)
	creator, err = tm.executor.GetCreatorByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, creator)
}

func TestGetDashboard(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.store.EXPECT().GetCreatorByWallet(ctx, "wallet").Return(&schema.Creator{
		WalletAddress:     "wallet",
		Username:          "alice",
		DisplayName:       "Alice",
		TotalTipsReceived: 99, // drifted; the dashboard sums tips instead
	}, nil)
	tm.store.EXPECT().ListTipsByCreator(ctx, "wallet", 10).Return(nil, nil)
	tm.store.EXPECT().GetCreatorTipTotal(ctx, "wallet").Return(15.0, nil)

	dashboard, err := tm.executor.GetDashboard(ctx, "wallet")
	require.NoError(t, err)
	assert.Equal(t, "alice", dashboard.Creator.Username)
	assert.Equal(t, 15.0, dashboard.Stats.TotalTipsReceived)
	assert.NotNil(t, dashboard.RecentTips)
	assert.Empty(t, dashboard.RecentTips)
}

func TestGetDashboard_DatabaseError(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.store.EXPECT().GetCreatorByWallet(ctx, "wallet").Return(&schema.Creator{WalletAddress: "wallet"}, nil)
	tm.store.EXPECT().ListTipsByCreator(ctx, "wallet", 10).Return(nil, errConnectionLost)

	_, err := tm.executor.GetDashboard(ctx, "wallet")
	requireAPIError(t, err, apierrors.ErrCodeDatabaseError)
}

func TestGetWalletInfo_LimitsRecent(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tips := make([]schema.Tip, 12)
	for i := range tips {
		tips[i] = schema.Tip{ID: uint64(12 - i), Status: domain.TipStatusCompleted, AmountUSDC: 1}
	}

	tm.store.EXPECT().GetCreatorByWallet(ctx, "wallet").Return(&schema.Creator{WalletAddress: "wallet"}, nil)
	tm.store.EXPECT().ListAllTipsByRecipient(ctx, "wallet").Return(tips, nil)
	tm.store.EXPECT().GetCreatorTipTotal(ctx, "wallet").Return(12.0, nil)

	info, err := tm.executor.GetWalletInfo(ctx, "wallet")
	require.NoError(t, err)
	assert.Len(t, info.AllTips, 12)
	assert.Len(t, info.RecentTips, 10)
	assert.Equal(t, uint64(12), info.RecentTips[0].ID)
	assert.Equal(t, 12.0, info.TotalTipsReceived)
}

func TestCleanupSelfTips(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.store.EXPECT().DeleteSelfTips(ctx, "wallet").Return(int64(2), nil)
	resp, err := tm.executor.CleanupSelfTips(ctx, "wallet")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.DeletedTips)

	tm.store.EXPECT().DeleteSelfTips(ctx, "ghost").Return(int64(0), domain.ErrCreatorNotFound)
	_, err = tm.executor.CleanupSelfTips(ctx, "ghost")
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestReconcileTotals(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.store.EXPECT().ReconcileCreatorTotals(ctx).Return(int64(3), nil)

	resp, err := tm.executor.ReconcileTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.UpdatedCreators)

	count, err := testutil.GatherAndCount(tm.metrics.Registry(), "sosiol_creators_totals_reconciled_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testSignature(seed byte) string {
	return base58.Encode(bytes.Repeat([]byte{seed}, solana.SignatureLength))
}

func TestGetTransaction(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	blockTime := int64(1700000000)

	found := testSignature(1)
	tm.transactions.EXPECT().GetTransaction(ctx, found).Return(&rpc.TransactionResponse{
		Slot:      42,
		BlockTime: &blockTime,
		Meta:      &rpc.TransactionMeta{Fee: 5000},
	}, nil)
	tx, err := tm.executor.GetTransaction(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, found, tx.Signature)
	assert.Equal(t, uint64(42), tx.Slot)
	assert.Equal(t, uint64(5000), tx.Fee)
	assert.Nil(t, tx.Err)

	missing := testSignature(2)
	tm.transactions.EXPECT().GetTransaction(ctx, missing).Return(nil, nil)
	tx, err = tm.executor.GetTransaction(ctx, missing)
	require.NoError(t, err)
	assert.Nil(t, tx)

	broken := testSignature(3)
	tm.transactions.EXPECT().GetTransaction(ctx, broken).Return(nil, errors.New("rpc error -32005: node is behind"))
	_, err = tm.executor.GetTransaction(ctx, broken)
	apiErr := requireAPIError(t, err, apierrors.ErrCodeServiceError)
	assert.NotContains(t, apiErr.Message, "node is behind")
}

func TestGetTransaction_MalformedSignature(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	for _, signature := range []string{"not-a-signature", "0OIl", testSignature(4)[:20]} {
		tx, err := tm.executor.GetTransaction(ctx, signature)
		require.NoError(t, err, signature)
		assert.Nil(t, tx, signature)
	}

	rejected := testSignature(5)
	tm.transactions.EXPECT().GetTransaction(ctx, rejected).
		Return(nil, fmt.Errorf("getTransaction(%s): %w", rejected, &rpc.Error{Code: rpc.CodeInvalidParams, Message: "Invalid param: WrongSize"}))
	tx, err := tm.executor.GetTransaction(ctx, rejected)
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestGetTransaction_NotConfigured(t *testing.T) {
	exec := executor.NewExecutor(nil, verifier.NewTrustingVerifier(), nil, nil, nil)

	_, err := exec.GetTransaction(context.Background(), "sig")
	requireAPIError(t, err, apierrors.ErrCodeServiceError)
}

func TestUploadAvatar(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.storage.EXPECT().Name().Return(upload.PROVIDER_LOCAL).AnyTimes()

	tm.storage.EXPECT().Save(ctx, gomock.Any(), "image/png", pngHeader).Return("https://cdn.example/avatar.png", nil)
	resp, err := tm.executor.UploadAvatar(ctx, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatar.png", resp.URL)

	_, err = tm.executor.UploadAvatar(ctx, bytes.NewReader([]byte("plain text, not an image")))
	requireAPIError(t, err, apierrors.ErrCodeBadRequest)

	_, err = tm.executor.UploadAvatar(ctx, bytes.NewReader(make([]byte, 2048)))
	requireAPIError(t, err, apierrors.ErrCodeBadRequest)

	tm.storage.EXPECT().Save(ctx, gomock.Any(), "image/png", pngHeader).Return("", errors.New("disk full"))
	_, err = tm.executor.UploadAvatar(ctx, bytes.NewReader(pngHeader))
	apiErr := requireAPIError(t, err, apierrors.ErrCodeServiceError)
	assert.NotContains(t, apiErr.Message, "disk full")
}
