package verifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/solana/rpc"
)

// Verification modes
const (
	ModeTrust = "trust"
	ModeRPC   = "rpc"
)

// Payment describes a tip payment claimed by a client
type Payment struct {
	Signature  string
	FromWallet string
	ToWallet   string
	AmountUSDC float64
}

// PaymentVerifier decides the status a newly recorded tip is stored with
//
//go:generate mockgen -source=payment.go -destination=../mocks/payment_verifier.go -package=mocks -mock_names=PaymentVerifier=MockPaymentVerifier,TransactionFetcher=MockTransactionFetcher
type PaymentVerifier interface {
	Verify(ctx context.Context, payment Payment) domain.TipStatus
}

// TransactionFetcher looks up confirmed transactions
type TransactionFetcher interface {
	// GetTransaction returns nil when the transaction is unknown
	GetTransaction(ctx context.Context, signature string) (*rpc.TransactionResponse, error)
}

// TrustingVerifier treats any payment that reaches the backend as completed.
// Amount, parties and existence are not checked on chain.
type TrustingVerifier struct{}

// NewTrustingVerifier creates a TrustingVerifier
func NewTrustingVerifier() *TrustingVerifier {
	return &TrustingVerifier{}
}

func (v *TrustingVerifier) Verify(ctx context.Context, payment Payment) domain.TipStatus {
	logger.InfoCtx(ctx, "Recording tip without on-chain verification",
		zap.String("signature", payment.Signature))
	return domain.TipStatusCompleted
}

// RPCVerifier requires the transaction to exist on chain and to have succeeded.
// Amount and parties are not checked.
type RPCVerifier struct {
	transactions TransactionFetcher
}

// NewRPCVerifier creates an RPCVerifier
func NewRPCVerifier(transactions TransactionFetcher) *RPCVerifier {
	return &RPCVerifier{transactions: transactions}
}

func (v *RPCVerifier) Verify(ctx context.Context, payment Payment) domain.TipStatus {
	tx, err := v.transactions.GetTransaction(ctx, payment.Signature)
	if err != nil {
		logger.WarnCtx(ctx, "Transaction lookup failed, recording tip as pending",
			zap.String("signature", payment.Signature),
			zap.Error(err))
		return domain.TipStatusPending
	}

	if tx == nil {
		logger.InfoCtx(ctx, "Transaction not found, recording tip as pending",
			zap.String("signature", payment.Signature))
		return domain.TipStatusPending
	}

	if tx.Failed() {
		logger.InfoCtx(ctx, "Transaction failed on chain",
			zap.String("signature", payment.Signature),
			zap.Any("err", tx.Meta.Err))
		return domain.TipStatusFailed
	}

	return domain.TipStatusCompleted
}

// New returns the PaymentVerifier for mode
func New(mode string, transactions TransactionFetcher) (PaymentVerifier, error) {
	switch mode {
	case "", ModeTrust:
		return NewTrustingVerifier(), nil
	case ModeRPC:
		if transactions == nil {
			return nil, fmt.Errorf("rpc verification requires a transaction fetcher")
		}
		return NewRPCVerifier(transactions), nil
	default:
		return nil, fmt.Errorf("unknown verification mode %q", mode)
	}
}
