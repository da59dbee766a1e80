package schema

import (
	"time"

	"github.com/sosiol/sosiol/internal/domain"
)

// Tip represents the tips table - one row per on-chain payment signature
type Tip struct {
	// ID is an auto-incrementing sequence number
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	FromWallet string `gorm:"column:from_wallet;not null;index;type:varchar(64)"`
	// ToCreatorWallet references creators.wallet_address
	ToCreatorWallet string  `gorm:"column:to_creator_wallet;not null;index:idx_tips_recipient_status_created,priority:1;type:varchar(64)"`
	AmountUSDC      float64 `gorm:"column:amount_usdc;not null"`
	// TransactionSignature is the idempotency key
	TransactionSignature string           `gorm:"column:transaction_signature;not null;uniqueIndex;type:varchar(128)"`
	Message              *string          `gorm:"column:message;type:varchar(280)"`
	Status               domain.TipStatus `gorm:"column:status;not null;index:idx_tips_recipient_status_created,priority:2;type:varchar(16)"`
	CreatedAt            time.Time        `gorm:"column:created_at;not null;autoCreateTime;index:idx_tips_recipient_status_created,priority:3"`

	Creator *Creator `gorm:"foreignKey:ToCreatorWallet;references:WalletAddress;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Tip model
func (Tip) TableName() string {
	return "tips"
}
