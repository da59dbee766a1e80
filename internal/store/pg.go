package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/store/schema"
)

// totals closer than this are considered equal
const totalEpsilon = 0.0000001

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new store instance. Any gorm dialect supporting ON CONFLICT works.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// isUniqueViolation matches translated and raw unique constraint errors from postgres and sqlite
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// ListCreators returns all creators, newest first
func (s *pgStore) ListCreators(ctx context.Context) ([]schema.Creator, error) {
	var creators []schema.Creator
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&creators).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	return creators, nil
}

// GetCreatorByUsername retrieves a creator by username
func (s *pgStore) GetCreatorByUsername(ctx context.Context, username string) (*schema.Creator, error) {
	var creator schema.Creator
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get creator by username: %w", err)
	}
	return &creator, nil
}

// GetCreatorByWallet retrieves a creator by wallet address
func (s *pgStore) GetCreatorByWallet(ctx context.Context, walletAddress string) (*schema.Creator, error) {
	var creator schema.Creator
	err := s.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get creator by wallet: %w", err)
	}
	return &creator, nil
}

// UpsertCreator creates or replaces a creator profile keyed by wallet address
func (s *pgStore) UpsertCreator(ctx context.Context, input UpsertCreatorInput) (*schema.Creator, error) {
	var creator schema.Creator

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner schema.Creator
		err := tx.Where("username = ?", input.Username).First(&owner).Error
		switch {
		case err == nil && owner.WalletAddress != input.WalletAddress:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}

		profile := schema.Creator{
			WalletAddress: input.WalletAddress,
			Username:      input.Username,
			DisplayName:   input.DisplayName,
			Bio:           input.Bio,
			AvatarURL:     input.AvatarURL,
			CoverImageURL: input.CoverImageURL,
		}

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username",
				"display_name",
				"bio",
				"avatar_url",
				"cover_image_url",
				"updated_at",
			}),
		}).Create(&profile).Error
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("failed to upsert creator: %w", err)
		}

		if err := tx.Where("wallet_address = ?", input.WalletAddress).First(&creator).Error; err != nil {
			return fmt.Errorf("failed to reload creator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &creator, nil
}

// CreateTip records a tip and increments the recipient's total atomically
func (s *pgStore) CreateTip(ctx context.Context, input CreateTipInput) (*schema.Tip, bool, error) {
	var tip schema.Tip
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("transaction_signature = ?", input.TransactionSignature).First(&tip).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing tip: %w", err)
		}

		var recipients int64
		err = tx.Model(&schema.Creator{}).
			Where("wallet_address = ?", input.ToCreatorWallet).
			Count(&recipients).Error
		if err != nil {
			return fmt.Errorf("failed to check recipient: %w", err)
		}
		if recipients == 0 {
			return domain.ErrCreatorNotFound
		}

		tip = schema.Tip{
			FromWallet:           input.FromWallet,
			ToCreatorWallet:      input.ToCreatorWallet,
			AmountUSDC:           input.AmountUSDC,
			TransactionSignature: input.TransactionSignature,
			Message:              input.Message,
			Status:               input.Status,
		}

		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "transaction_signature"}},
				DoNothing: true,
			}).
			Create(&tip)
		if result.Error != nil {
			return fmt.Errorf("failed to create tip: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			// a concurrent request recorded the same signature first
			tip = schema.Tip{}
			if err := tx.Where("transaction_signature = ?", input.TransactionSignature).First(&tip).Error; err != nil {
				return fmt.Errorf("failed to load concurrent tip: %w", err)
			}
			return nil
		}
		created = true

		if tip.Status != domain.TipStatusCompleted {
			return nil
		}

		err = tx.Model(&schema.Creator{}).
			Where("wallet_address = ?", input.ToCreatorWallet).
			UpdateColumn("total_tips_received", gorm.Expr("total_tips_received + ?", input.AmountUSDC)).Error
		if err != nil {
			return fmt.Errorf("failed to increment creator total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.InfoCtx(ctx, "Recorded tip",
			zap.Uint64("id", tip.ID),
			zap.String("signature", tip.TransactionSignature),
			zap.String("status", string(tip.Status)))
	}

	return &tip, created, nil
}

// GetTipBySignature retrieves a tip by its transaction signature
func (s *pgStore) GetTipBySignature(ctx context.Context, signature string) (*schema.Tip, error) {
	var tip schema.Tip
	err := s.db.WithContext(ctx).Where("transaction_signature = ?", signature).First(&tip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	return &tip, nil
}

func (s *pgStore) listTips(ctx context.Context, column string, walletAddress string, status *domain.TipStatus, limit int) ([]schema.Tip, error) {
	query := s.db.WithContext(ctx).
		Where(column+" = ?", walletAddress).
		Order("created_at DESC").
		Order("id DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	tips := []schema.Tip{}
	if err := query.Find(&tips).Error; err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	return tips, nil
}

// ListTipsByCreator retrieves completed tips received by a wallet
func (s *pgStore) ListTipsByCreator(ctx context.Context, walletAddress string, limit int) ([]schema.Tip, error) {
	status := domain.TipStatusCompleted
	return s.listTips(ctx, "to_creator_wallet", walletAddress, &status, limit)
}

// ListTipsByFan retrieves completed tips sent by a wallet
func (s *pgStore) ListTipsByFan(ctx context.Context, walletAddress string, limit int) ([]schema.Tip, error) {
	status := domain.TipStatusCompleted
	return s.listTips(ctx, "from_wallet", walletAddress, &status, limit)
}

// ListAllTipsByRecipient retrieves every tip received by a wallet
func (s *pgStore) ListAllTipsByRecipient(ctx context.Context, walletAddress string) ([]schema.Tip, error) {
	return s.listTips(ctx, "to_creator_wallet", walletAddress, nil, 0)
}

// GetCreatorTipTotal sums completed tips received by a wallet
func (s *pgStore) GetCreatorTipTotal(ctx context.Context, walletAddress string) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&schema.Tip{}).
		Select("COALESCE(SUM(amount_usdc), 0)").
		Where("to_creator_wallet = ? AND status = ?", walletAddress, string(domain.TipStatusCompleted)).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum tips: %w", err)
	}
	return total, nil
}

// DeleteSelfTips removes self-payment tips and recomputes the wallet's total
func (s *pgStore) DeleteSelfTips(ctx context.Context, walletAddress string) (int64, error) {
	var deleted int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var creators int64
		if err := tx.Model(&schema.Creator{}).Where("wallet_address = ?", walletAddress).Count(&creators).Error; err != nil {
			return fmt.Errorf("failed to check creator: %w", err)
		}
		if creators == 0 {
			return domain.ErrCreatorNotFound
		}

		result := tx.
			Where("from_wallet = ? AND to_creator_wallet = ?", walletAddress, walletAddress).
			Delete(&schema.Tip{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete self tips: %w", result.Error)
		}
		deleted = result.RowsAffected

		err := tx.Exec(`UPDATE creators SET total_tips_received = COALESCE((
			SELECT SUM(amount_usdc) FROM tips
			WHERE tips.to_creator_wallet = creators.wallet_address AND tips.status = ?
		), 0) WHERE wallet_address = ?`, string(domain.TipStatusCompleted), walletAddress).Error
		if err != nil {
			return fmt.Errorf("failed to recompute creator total: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Deleted self tips",
		zap.String("wallet", walletAddress),
		zap.Int64("deleted", deleted))

	return deleted, nil
}

// ReconcileCreatorTotals repairs totals that drifted from the sum of completed tips
func (s *pgStore) ReconcileCreatorTotals(ctx context.Context) (int64, error) {
	const completedSum = `COALESCE((
		SELECT SUM(amount_usdc) FROM tips
		WHERE tips.to_creator_wallet = creators.wallet_address AND tips.status = ?
	), 0)`

	result := s.db.WithContext(ctx).Exec(
		`UPDATE creators SET total_tips_received = `+completedSum+
			` WHERE ABS(total_tips_received - `+completedSum+`) > ?`,
		string(domain.TipStatusCompleted), string(domain.TipStatusCompleted), totalEpsilon)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reconcile creator totals: %w", result.Error)
	}
	return result.RowsAffected, nil
}
