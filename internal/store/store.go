package store

import (
	"context"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/store/schema"
)

// UpsertCreatorInput is a full profile as saved by its owner
type UpsertCreatorInput struct {
	WalletAddress string
	// Username must already be normalized to lowercase
	Username      string
	DisplayName   string
	Bio           string
	AvatarURL     string
	CoverImageURL string
}

// CreateTipInput is a tip to record
type CreateTipInput struct {
	FromWallet           string
	ToCreatorWallet      string
	AmountUSDC           float64
	TransactionSignature string
	Message              *string
	Status               domain.TipStatus
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ListCreators returns all creators, newest first
	ListCreators(ctx context.Context) ([]schema.Creator, error)
	// GetCreatorByUsername returns nil if no creator has the username
	GetCreatorByUsername(ctx context.Context, username string) (*schema.Creator, error)
	// GetCreatorByWallet returns nil if no creator owns the wallet
	GetCreatorByWallet(ctx context.Context, walletAddress string) (*schema.Creator, error)
	// UpsertCreator creates the creator or replaces its profile fields. The tip total is never touched.
	// Returns domain.ErrUsernameTaken when another wallet owns the username.
	UpsertCreator(ctx context.Context, input UpsertCreatorInput) (*schema.Creator, error)

	// CreateTip records a tip and, if it is completed, adds its amount to the recipient's total in
	// the same transaction. A known signature returns the stored tip with created=false.
	// Returns domain.ErrCreatorNotFound when the recipient has no profile.
	CreateTip(ctx context.Context, input CreateTipInput) (tip *schema.Tip, created bool, err error)
	// GetTipBySignature returns nil if the signature was never recorded
	GetTipBySignature(ctx context.Context, signature string) (*schema.Tip, error)
	// ListTipsByCreator returns up to limit completed tips addressed to the wallet, newest first
	ListTipsByCreator(ctx context.Context, walletAddress string, limit int) ([]schema.Tip, error)
	// ListTipsByFan returns up to limit completed tips sent by the wallet, newest first
	ListTipsByFan(ctx context.Context, walletAddress string, limit int) ([]schema.Tip, error)
	// ListAllTipsByRecipient returns every tip addressed to the wallet regardless of status, newest first
	ListAllTipsByRecipient(ctx context.Context, walletAddress string) ([]schema.Tip, error)
	// GetCreatorTipTotal sums the completed tips addressed to the wallet
	GetCreatorTipTotal(ctx context.Context, walletAddress string) (float64, error)

	// DeleteSelfTips removes tips the wallet sent to itself and recomputes its total
	DeleteSelfTips(ctx context.Context, walletAddress string) (int64, error)
	// ReconcileCreatorTotals sets every drifted total to the sum of its completed tips and
	// returns the number of creators corrected
	ReconcileCreatorTotals(ctx context.Context) (int64, error)
}
