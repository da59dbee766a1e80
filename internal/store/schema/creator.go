package schema

import "time"

// Creator represents the creators table - tip recipients with a public profile
type Creator struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WalletAddress is the creator's base58 wallet address and primary identity
	WalletAddress string `gorm:"column:wallet_address;not null;uniqueIndex;type:varchar(64)"`
	// Username is lowercase and 3-30 characters
	Username string `gorm:"column:username;not null;uniqueIndex;type:varchar(30)"`
	DisplayName   string `gorm:"column:display_name;not null;type:varchar(50)"`
	Bio           string `gorm:"column:bio;not null;default:'';type:text"`
	AvatarURL     string `gorm:"column:avatar_url;not null;default:'';type:text"`
	CoverImageURL string `gorm:"column:cover_image_url;not null;default:'';type:text"`
	// TotalTipsReceived is the denormalized sum of completed tips addressed to this wallet
	TotalTipsReceived float64   `gorm:"column:total_tips_received;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;autoCreateTime;index"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the Creator model
func (Creator) TableName() string {
	return "creators"
}
