package txbuilder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/blockhash"
	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
)

// AccountFetcher looks up on-chain accounts
//
//go:generate mockgen -source=builder.go -destination=../mocks/account_fetcher.go -package=mocks -mock_names=AccountFetcher=MockAccountFetcher
type AccountFetcher interface {
	// GetAccountInfo returns nil when the account does not exist
	GetAccountInfo(ctx context.Context, address string) (*rpc.AccountInfo, error)
}

// Result is an assembled, unsigned USDC transfer
type Result struct {
	Transaction               *solana.Transaction
	SourceTokenAccount        solana.PublicKey
	DestinationTokenAccount   solana.PublicKey
	CreatesDestinationAccount bool
	// Amount is in token base units
	Amount    uint64
	Blockhash string
}

// Builder assembles token transfer transactions for wallets to sign
type Builder struct {
	accounts    AccountFetcher
	blockhashes blockhash.Provider
	mint        solana.PublicKey
}

// NewBuilder creates a Builder for transfers of mint
func NewBuilder(accounts AccountFetcher, blockhashes blockhash.Provider, mint solana.PublicKey) *Builder {
	return &Builder{
		accounts:    accounts,
		blockhashes: blockhashes,
		mint:        mint,
	}
}

// BuildTransfer returns an unsigned transaction moving amountUSDC from the sender's associated token
// account to the recipient's, paid for by the sender. The recipient's token account is created in
// the same transaction when it does not exist or its existence cannot be determined.
func (b *Builder) BuildTransfer(ctx context.Context, from, to solana.PublicKey, amountUSDC float64) (*Result, error) {
	if from == to {
		return nil, domain.ErrSelfTip
	}

	amount, err := solana.USDCToBaseUnits(amountUSDC)
	if err != nil {
		return nil, err
	}

	source, err := solana.FindAssociatedTokenAddress(from, b.mint)
	if err != nil {
		return nil, fmt.Errorf("%w: sender: %v", domain.ErrInvalidPublicKey, err)
	}
	destination, err := solana.FindAssociatedTokenAddress(to, b.mint)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %v", domain.ErrInvalidPublicKey, err)
	}

	createDestination := true
	info, err := b.accounts.GetAccountInfo(ctx, destination.String())
	if err != nil {
		logger.WarnCtx(ctx, "Could not check recipient token account, assuming it needs to be created",
			zap.String("token_account", destination.String()),
			zap.Error(err))
	} else {
		createDestination = info == nil
	}

	var instructions []solana.Instruction
	if createDestination {
		instructions = append(instructions,
			solana.NewCreateAssociatedTokenAccountInstruction(from, destination, to, b.mint))
	}
	instructions = append(instructions, solana.NewTransferInstruction(source, destination, from, amount))

	recent, err := b.blockhashes.GetBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := solana.HashFromBase58(recent)
	if err != nil {
		return nil, fmt.Errorf("invalid blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, hash, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compile transaction: %w", err)
	}

	logger.DebugCtx(ctx, "Built transfer transaction",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Uint64("amount", amount),
		zap.Bool("creates_destination", createDestination))

	return &Result{
		Transaction:               tx,
		SourceTokenAccount:        source,
		DestinationTokenAccount:   destination,
		CreatesDestinationAccount: createDestination,
		Amount:                    amount,
		Blockhash:                 recent,
	}, nil
}
