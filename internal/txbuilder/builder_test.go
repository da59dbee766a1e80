package txbuilder_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/mocks"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/txbuilder"
)

const testBlockhash = "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"

var usdcMint = solana.MustPublicKeyFromBase58(domain.USDC_MAINNET_MINT)

// testBuilderMocks contains all the mocks needed for testing the transaction builder
type testBuilderMocks struct {
	ctrl        *gomock.Controller
	accounts    *mocks.MockAccountFetcher
	blockhashes *mocks.MockBlockhashProvider
	builder     *txbuilder.Builder
	from        solana.PublicKey
	to          solana.PublicKey
}

func newWallet(t *testing.T) solana.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	pk, err := solana.PublicKeyFromBytes(pub)
	require.NoError(t, err)
	return pk
}

func setupTest(t *testing.T) *testBuilderMocks {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountFetcher(ctrl)
	blockhashes := mocks.NewMockBlockhashProvider(ctrl)

	return &testBuilderMocks{
		ctrl:        ctrl,
		accounts:    accounts,
		blockhashes: blockhashes,
		builder:     txbuilder.NewBuilder(accounts, blockhashes, usdcMint),
		from:        newWallet(t),
		to:          newWallet(t),
	}
}

func tearDownTest(tm *testBuilderMocks) {
	tm.ctrl.Finish()
}

func destinationATA(t *testing.T, owner solana.PublicKey) solana.PublicKey {
	t.Helper()
	ata, err := solana.FindAssociatedTokenAddress(owner, usdcMint)
	require.NoError(t, err)
	return ata
}

func TestBuilder_BuildTransfer_ExistingDestination(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	dest := destinationATA(t, tm.to)

	tm.accounts.EXPECT().GetAccountInfo(ctx, dest.String()).Return(&rpc.AccountInfo{Lamports: 2039280}, nil)
	tm.blockhashes.EXPECT().GetBlockhash(ctx).Return(testBlockhash, nil)

	result, err := tm.builder.BuildTransfer(ctx, tm.from, tm.to, 0.29)
	require.NoError(t, err)

	assert.False(t, result.CreatesDestinationAccount)
	assert.Equal(t, uint64(290000), result.Amount)
	assert.Equal(t, dest, result.DestinationTokenAccount)
	assert.Equal(t, destinationATA(t, tm.from), result.SourceTokenAccount)
	assert.Equal(t, testBlockhash, result.Blockhash)

	tx := result.Transaction
	assert.Equal(t, tm.from, tx.FeePayer())
	assert.Equal(t, testBlockhash, tx.Message.RecentBlockhash.String())
	require.Len(t, tx.Message.Instructions, 1)

	data := tx.Message.Instructions[0].Data
	assert.Equal(t, byte(3), data[0])
	assert.Equal(t, uint64(290000), binary.LittleEndian.Uint64(data[1:]))

	// unsigned
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, solana.Signature{}, tx.Signatures[0])
}

func TestBuilder_BuildTransfer_MissingDestination(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	dest := destinationATA(t, tm.to)

	tm.accounts.EXPECT().GetAccountInfo(ctx, dest.String()).Return(nil, nil)
	tm.blockhashes.EXPECT().GetBlockhash(ctx).Return(testBlockhash, nil)

	result, err := tm.builder.BuildTransfer(ctx, tm.from, tm.to, 10)
	require.NoError(t, err)

	assert.True(t, result.CreatesDestinationAccount)
	require.Len(t, result.Transaction.Message.Instructions, 2)

	keys := result.Transaction.Message.AccountKeys
	create := result.Transaction.Message.Instructions[0]
	assert.Equal(t, solana.AssociatedTokenProgramID, keys[create.ProgramIDIndex])
	assert.Equal(t, tm.from, keys[create.Accounts[0]], "sender pays for the new account")
	assert.Equal(t, dest, keys[create.Accounts[1]])
	assert.Equal(t, tm.to, keys[create.Accounts[2]])

	transfer := result.Transaction.Message.Instructions[1]
	assert.Equal(t, solana.TokenProgramID, keys[transfer.ProgramIDIndex])
}

func TestBuilder_BuildTransfer_AccountCheckFailsOpen(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.accounts.EXPECT().GetAccountInfo(ctx, gomock.Any()).Return(nil, errors.New("connection reset"))
	tm.blockhashes.EXPECT().GetBlockhash(ctx).Return(testBlockhash, nil)

	result, err := tm.builder.BuildTransfer(ctx, tm.from, tm.to, 1)
	require.NoError(t, err)
	assert.True(t, result.CreatesDestinationAccount)
	assert.Len(t, result.Transaction.Message.Instructions, 2)
}

func TestBuilder_BuildTransfer_InvalidAmount(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	for _, amount := range []float64{0, -1, 0.0000001} {
		_, err := tm.builder.BuildTransfer(context.Background(), tm.from, tm.to, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestBuilder_BuildTransfer_SelfTransfer(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	_, err := tm.builder.BuildTransfer(context.Background(), tm.from, tm.from, 1)
	assert.ErrorIs(t, err, domain.ErrSelfTip)
}

func TestBuilder_BuildTransfer_BlockhashError(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.accounts.EXPECT().GetAccountInfo(ctx, gomock.Any()).Return(&rpc.AccountInfo{}, nil)
	tm.blockhashes.EXPECT().GetBlockhash(ctx).Return("", domain.ErrInsufficientFunds)

	_, err := tm.builder.BuildTransfer(ctx, tm.from, tm.to, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}
