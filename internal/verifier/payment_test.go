package verifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/mocks"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/verifier"
)

var payment = verifier.Payment{
	Signature:  "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW",
	FromWallet: "fan",
	ToWallet:   "creator",
	AmountUSDC: 5,
}

func TestTrustingVerifier(t *testing.T) {
	v := verifier.NewTrustingVerifier()
	assert.Equal(t, domain.TipStatusCompleted, v.Verify(context.Background(), payment))
}

func TestRPCVerifier(t *testing.T) {
	tests := []struct {
		name string
		tx   *rpc.TransactionResponse
		err  error
		want domain.TipStatus
	}{
		{name: "confirmed", tx: &rpc.TransactionResponse{Slot: 1, Meta: &rpc.TransactionMeta{}}, want: domain.TipStatusCompleted},
		{name: "missing", tx: nil, want: domain.TipStatusPending},
		{name: "lookup error", err: errors.New("connection refused"), want: domain.TipStatusPending},
		{
			name: "failed on chain",
			tx:   &rpc.TransactionResponse{Slot: 1, Meta: &rpc.TransactionMeta{Err: map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}}},
			want: domain.TipStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			fetcher := mocks.NewMockTransactionFetcher(ctrl)
			fetcher.EXPECT().GetTransaction(ctx, payment.Signature).Return(tt.tx, tt.err)

			v := verifier.NewRPCVerifier(fetcher)
			assert.Equal(t, tt.want, v.Verify(ctx, payment))
		})
	}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, err := verifier.New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &verifier.TrustingVerifier{}, v)

	v, err = verifier.New(verifier.ModeRPC, mocks.NewMockTransactionFetcher(ctrl))
	require.NoError(t, err)
	assert.IsType(t, &verifier.RPCVerifier{}, v)

	_, err = verifier.New(verifier.ModeRPC, nil)
	assert.Error(t, err)

	_, err = verifier.New("strict", nil)
	assert.Error(t, err)
}
