package executor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/api/shared/constants"
	"github.com/sosiol/sosiol/internal/api/shared/dto"
	apierrors "github.com/sosiol/sosiol/internal/api/shared/errors"
	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/metrics"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/store"
	"github.com/sosiol/sosiol/internal/upload"
	"github.com/sosiol/sosiol/internal/verifier"
)

// Executor is the interface for the API executor
// Returned errors are *apierrors.APIError and safe to send to clients
type Executor interface {
	// ListCreators returns every creator, newest first
	ListCreators(ctx context.Context) ([]dto.CreatorResponse, error)

	// GetCreatorByUsername returns nil if no creator has the username
	GetCreatorByUsername(ctx context.Context, username string) (*dto.CreatorResponse, error)

	// GetCreatorByWallet returns nil if no creator owns the wallet
	GetCreatorByWallet(ctx context.Context, walletAddress string) (*dto.CreatorResponse, error)

	// UpsertCreator verifies the wallet signature and saves the profile
	UpsertCreator(ctx context.Context, req dto.UpsertCreatorRequest) (*dto.CreatorResponse, error)

	// GetDashboard returns nil if no creator owns the wallet
	GetDashboard(ctx context.Context, walletAddress string) (*dto.DashboardResponse, error)

	// GetWalletInfo returns nil if no creator owns the wallet
	GetWalletInfo(ctx context.Context, walletAddress string) (*dto.WalletInfoResponse, error)

	// CleanupSelfTips removes self-payment tips addressed to the wallet and recomputes its total
	CleanupSelfTips(ctx context.Context, walletAddress string) (*dto.CleanupResponse, error)

	// ReconcileTotals repairs every creator total that drifted from its completed tips
	ReconcileTotals(ctx context.Context) (*dto.ReconcileResponse, error)

	// RecordTip stores a tip once per transaction signature. created is false when the
	// signature was already recorded.
	RecordTip(ctx context.Context, req dto.CreateTipRequest) (tip *dto.TipResponse, created bool, err error)

	// ListTipsByCreator returns recent completed tips received by the wallet
	ListTipsByCreator(ctx context.Context, walletAddress string) ([]dto.TipResponse, error)

	// ListTipsByFan returns recent completed tips sent by the wallet
	ListTipsByFan(ctx context.Context, walletAddress string) ([]dto.TipResponse, error)

	// GetTransaction looks up a transaction on chain, returning nil if it is unknown
	GetTransaction(ctx context.Context, signature string) (*dto.TransactionResponse, error)

	// UploadAvatar stores an avatar image and returns its public URL
	UploadAvatar(ctx context.Context, r io.Reader) (*dto.UploadResponse, error)
}

type executor struct {
	store        store.Store
	payments     verifier.PaymentVerifier
	transactions verifier.TransactionFetcher
	uploader     *upload.Uploader
	metrics      *metrics.Metrics
}

func NewExecutor(store store.Store, payments verifier.PaymentVerifier, transactions verifier.TransactionFetcher, uploader *upload.Uploader, m *metrics.Metrics) Executor {
	return &executor{
		store:        store,
		payments:     payments,
		transactions: transactions,
		uploader:     uploader,
		metrics:      m,
	}
}

// databaseError logs the cause and returns a client-safe error
func databaseError(ctx context.Context, err error, message string, fields ...zap.Field) error {
	logger.ErrorCtx(ctx, fmt.Errorf("%s: %w", message, err), fields...)
	return apierrors.NewDatabaseError(message)
}

func (e *executor) ListCreators(ctx context.Context) ([]dto.CreatorResponse, error) {
	creators, err := e.store.ListCreators(ctx)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get creators")
	}

	return dto.MapCreatorsToDTO(creators), nil
}

func (e *executor) GetCreatorByUsername(ctx context.Context, username string) (*dto.CreatorResponse, error) {
	if !domain.ValidUsernameLength(username) {
		return nil, apierrors.NewBadRequestError("Invalid username", "username must be between 3 and 30 characters")
	}

	creator, err := e.store.GetCreatorByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get creator", zap.String("username", username))
	}
	if creator == nil {
		return nil, nil
	}

	return dto.MapCreatorToDTO(creator), nil
}

func (e *executor) GetCreatorByWallet(ctx context.Context, walletAddress string) (*dto.CreatorResponse, error) {
	creator, err := e.store.GetCreatorByWallet(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get creator", zap.String("wallet", walletAddress))
	}
	if creator == nil {
		return nil, nil
	}

	return dto.MapCreatorToDTO(creator), nil
}

func (e *executor) UpsertCreator(ctx context.Context, req dto.UpsertCreatorRequest) (*dto.CreatorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !verifier.VerifyWalletSignature(req.WalletAddress, req.Message, req.Signature) {
		logger.WarnCtx(ctx, "Rejected profile update with invalid signature", zap.String("wallet", req.WalletAddress))
		return nil, apierrors.NewUnauthorizedError("Invalid signature")
	}

	creator, err := e.store.UpsertCreator(ctx, store.UpsertCreatorInput{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		AvatarURL:     req.AvatarURL,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, apierrors.NewBadRequestError("Username already taken")
		}
		return nil, databaseError(ctx, err, "Failed to save creator", zap.String("wallet", req.WalletAddress))
	}

	logger.InfoCtx(ctx, "Saved creator profile",
		zap.String("wallet", creator.WalletAddress),
		zap.String("username", creator.Username),
	)

	return dto.MapCreatorToDTO(creator), nil
}

func (e *executor) GetDashboard(ctx context.Context, walletAddress string) (*dto.DashboardResponse, error) {
	creator, err := e.store.GetCreatorByWallet(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get creator", zap.String("wallet", walletAddress))
	}
	if creator == nil {
		return nil, nil
	}

	tips, err := e.store.ListTipsByCreator(ctx, walletAddress, constants.DASHBOARD_TIP_LIMIT)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tips", zap.String("wallet", walletAddress))
	}

	total, err := e.store.GetCreatorTipTotal(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tip total", zap.String("wallet", walletAddress))
	}

	return &dto.DashboardResponse{
		Creator: dto.DashboardCreator{
			Username:      creator.Username,
			DisplayName:   creator.DisplayName,
			WalletAddress: creator.WalletAddress,
		},
		Stats: dto.DashboardStats{
			TotalTipsReceived: total,
		},
		RecentTips: dto.MapTipsToDTO(tips),
	}, nil
}

func (e *executor) GetWalletInfo(ctx context.Context, walletAddress string) (*dto.WalletInfoResponse, error) {
	creator, err := e.store.GetCreatorByWallet(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get creator", zap.String("wallet", walletAddress))
	}
	if creator == nil {
		return nil, nil
	}

	tips, err := e.store.ListAllTipsByRecipient(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tips", zap.String("wallet", walletAddress))
	}

	total, err := e.store.GetCreatorTipTotal(ctx, walletAddress)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tip total", zap.String("wallet", walletAddress))
	}

	recent := make([]dto.WalletTipSummary, 0, constants.WALLET_INFO_LIMIT)
	for i := 0; i < len(tips) && i < constants.WALLET_INFO_LIMIT; i++ {
		recent = append(recent, dto.WalletTipSummary{
			ID:         tips[i].ID,
			FromWallet: tips[i].FromWallet,
			AmountUSDC: tips[i].AmountUSDC,
			Status:     string(tips[i].Status),
			CreatedAt:  tips[i].CreatedAt,
		})
	}

	return &dto.WalletInfoResponse{
		WalletAddress:     walletAddress,
		TotalTipsReceived: total,
		RecentTips:        recent,
		AllTips:           dto.MapTipsToDTO(tips),
	}, nil
}

func (e *executor) CleanupSelfTips(ctx context.Context, walletAddress string) (*dto.CleanupResponse, error) {
	deleted, err := e.store.DeleteSelfTips(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, domain.ErrCreatorNotFound) {
			return nil, apierrors.NewNotFoundError("Creator not found")
		}
		return nil, databaseError(ctx, err, "Failed to clean up self-payments", zap.String("wallet", walletAddress))
	}

	logger.InfoCtx(ctx, "Cleaned up self-payment tips",
		zap.String("wallet", walletAddress),
		zap.Int64("deleted", deleted),
	)

	return &dto.CleanupResponse{
		Message:     "Self-payment records cleaned up",
		DeletedTips: deleted,
	}, nil
}

func (e *executor) ReconcileTotals(ctx context.Context) (*dto.ReconcileResponse, error) {
	updated, err := e.store.ReconcileCreatorTotals(ctx)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to reconcile creator totals")
	}
	e.metrics.TotalsReconciled(updated)

	logger.InfoCtx(ctx, "Reconciled creator totals", zap.Int64("updated", updated))

	return &dto.ReconcileResponse{
		Message:         "Creator totals reconciled",
		UpdatedCreators: updated,
	}, nil
}

func (e *executor) RecordTip(ctx context.Context, req dto.CreateTipRequest) (*dto.TipResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	if domain.IsSelfTip(req.FromWallet, req.ToCreatorWallet) {
		logger.WarnCtx(ctx, "Rejected self-tip",
			zap.String("wallet", req.FromWallet),
			zap.String("signature", req.TransactionSignature),
		)
		return nil, false, apierrors.NewBadRequestError("Cannot send tips to yourself")
	}

	// Replays are answered from the database without touching the chain
	existing, err := e.store.GetTipBySignature(ctx, req.TransactionSignature)
	if err != nil {
		return nil, false, databaseError(ctx, err, "Failed to record tip", zap.String("signature", req.TransactionSignature))
	}
	if existing != nil {
		return dto.MapTipToDTO(existing), false, nil
	}

	status := e.payments.Verify(ctx, verifier.Payment{
		Signature:  req.TransactionSignature,
		FromWallet: req.FromWallet,
		ToWallet:   req.ToCreatorWallet,
		AmountUSDC: *req.AmountUSDC,
	})

	tip, created, err := e.store.CreateTip(ctx, store.CreateTipInput{
		FromWallet:           req.FromWallet,
		ToCreatorWallet:      req.ToCreatorWallet,
		AmountUSDC:           *req.AmountUSDC,
		TransactionSignature: req.TransactionSignature,
		Message:              req.Message,
		Status:               status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCreatorNotFound) {
			return nil, false, apierrors.NewNotFoundError("Creator not found")
		}
		return nil, false, databaseError(ctx, err, "Failed to record tip", zap.String("signature", req.TransactionSignature))
	}

	if created {
		e.metrics.TipRecorded(string(tip.Status), tip.AmountUSDC)
		logger.InfoCtx(ctx, "Recorded tip",
			zap.String("from", tip.FromWallet),
			zap.String("to", tip.ToCreatorWallet),
			zap.Float64("amount_usdc", tip.AmountUSDC),
			zap.String("status", string(tip.Status)),
			zap.String("signature", tip.TransactionSignature),
		)
	}

	return dto.MapTipToDTO(tip), created, nil
}

func (e *executor) ListTipsByCreator(ctx context.Context, walletAddress string) ([]dto.TipResponse, error) {
	tips, err := e.store.ListTipsByCreator(ctx, walletAddress, constants.MAX_TIPS_PER_LIST)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tips", zap.String("wallet", walletAddress))
	}

	return dto.MapTipsToDTO(tips), nil
}

func (e *executor) ListTipsByFan(ctx context.Context, walletAddress string) ([]dto.TipResponse, error) {
	tips, err := e.store.ListTipsByFan(ctx, walletAddress, constants.MAX_TIPS_PER_LIST)
	if err != nil {
		return nil, databaseError(ctx, err, "Failed to get tips", zap.String("wallet", walletAddress))
	}

	return dto.MapTipsToDTO(tips), nil
}

func (e *executor) GetTransaction(ctx context.Context, signature string) (*dto.TransactionResponse, error) {
	if e.transactions == nil {
		return nil, apierrors.NewServiceError("Transaction lookup is not configured")
	}

	// a malformed signature can never match a transaction
	if _, err := solana.SignatureFromBase58(signature); err != nil {
		return nil, nil
	}

	tx, err := e.transactions.GetTransaction(ctx, signature)
	if err != nil {
		if rpc.IsInvalidParams(err) {
			logger.WarnCtx(ctx, "Node rejected transaction signature", zap.String("signature", signature), zap.Error(err))
			return nil, nil
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to fetch transaction: %w", err), zap.String("signature", signature))
		return nil, apierrors.NewServiceError("Failed to fetch transaction")
	}
	if tx == nil {
		return nil, nil
	}

	resp := &dto.TransactionResponse{
		Signature:          signature,
		BlockTime:          tx.BlockTime,
		Slot:               tx.Slot,
		ConfirmationStatus: "confirmed",
	}
	if tx.Meta != nil {
		resp.Err = tx.Meta.Err
		resp.Fee = tx.Meta.Fee
	}

	return resp, nil
}

func (e *executor) UploadAvatar(ctx context.Context, r io.Reader) (*dto.UploadResponse, error) {
	if e.uploader == nil {
		return nil, apierrors.NewServiceError("Uploads are not configured")
	}

	url, err := e.uploader.UploadImage(ctx, r)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge):
			return nil, apierrors.NewBadRequestError("File too large", fmt.Sprintf("maximum size is %d bytes", e.uploader.MaxSize()))
		case errors.Is(err, domain.ErrUnsupportedMediaType):
			return nil, apierrors.NewBadRequestError("Only image files are allowed")
		default:
			logger.ErrorCtx(ctx, err)
			return nil, apierrors.NewServiceError("Failed to upload file")
		}
	}

	return &dto.UploadResponse{URL: url}, nil
}
