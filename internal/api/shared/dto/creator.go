package dto

import (
	"time"

	"github.com/sosiol/sosiol/internal/store/schema"
)

// CreatorResponse represents a creator profile
type CreatorResponse struct {
	ID                uint64    `json:"id"`
	WalletAddress     string    `json:"walletAddress"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"displayName"`
	Bio               string    `json:"bio"`
	AvatarURL         string    `json:"avatarUrl"`
	CoverImageURL     string    `json:"coverImageUrl"`
	TotalTipsReceived float64   `json:"totalTipsReceived"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MapCreatorToDTO maps a schema.Creator to CreatorResponse
func MapCreatorToDTO(creator *schema.Creator) *CreatorResponse {
	return &CreatorResponse{
		ID:                creator.ID,
		WalletAddress:     creator.WalletAddress,
		Username:          creator.Username,
		DisplayName:       creator.DisplayName,
		Bio:               creator.Bio,
		AvatarURL:         creator.AvatarURL,
		CoverImageURL:     creator.CoverImageURL,
		TotalTipsReceived: creator.TotalTipsReceived,
		CreatedAt:         creator.CreatedAt,
		UpdatedAt:         creator.UpdatedAt,
	}
}

// MapCreatorsToDTO maps a list of creators, never returning nil
func MapCreatorsToDTO(creators []schema.Creator) []CreatorResponse {
	out := make([]CreatorResponse, len(creators))
	for i := range creators {
		out[i] = *MapCreatorToDTO(&creators[i])
	}
	return out
}

// TipResponse represents a recorded tip
type TipResponse struct {
	ID                   uint64    `json:"id"`
	FromWallet           string    `json:"fromWallet"`
	ToCreatorWallet      string    `json:"toCreatorWallet"`
	AmountUSDC           float64   `json:"amountUSDC"`
	TransactionSignature string    `json:"transactionSignature"`
	Message              *string   `json:"message"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}

// MapTipToDTO maps a schema.Tip to TipResponse
func MapTipToDTO(tip *schema.Tip) *TipResponse {
	return &TipResponse{
		ID:                   tip.ID,
		FromWallet:           tip.FromWallet,
		ToCreatorWallet:      tip.ToCreatorWallet,
		AmountUSDC:           tip.AmountUSDC,
		TransactionSignature: tip.TransactionSignature,
		Message:              tip.Message,
		Status:               string(tip.Status),
		CreatedAt:            tip.CreatedAt,
	}
}

// MapTipsToDTO maps a list of tips, never returning nil
func MapTipsToDTO(tips []schema.Tip) []TipResponse {
	out := make([]TipResponse, len(tips))
	for i := range tips {
		out[i] = *MapTipToDTO(&tips[i])
	}
	return out
}
