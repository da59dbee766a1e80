package dto

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardCreator is the creator summary shown on the dashboard
type DashboardCreator struct {
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	WalletAddress string `json:"walletAddress"`
}

// DashboardStats holds the dashboard aggregates
type DashboardStats struct {
	TotalTipsReceived float64 `json:"totalTipsReceived"`
}

// DashboardResponse represents a creator's dashboard
type DashboardResponse struct {
	Creator    DashboardCreator `json:"creator"`
	Stats      DashboardStats   `json:"stats"`
	RecentTips []TipResponse    `json:"recentTips"`
}

// WalletTipSummary is the short form of a tip shown in wallet info
type WalletTipSummary struct {
	ID         uint64    `json:"id"`
	FromWallet string    `json:"fromWallet"`
	AmountUSDC float64   `json:"amountUSDC"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WalletInfoResponse represents every tip addressed to a wallet
type WalletInfoResponse struct {
	WalletAddress     string             `json:"walletAddress"`
	TotalTipsReceived float64            `json:"totalTipsReceived"`
	RecentTips        []WalletTipSummary `json:"recentTips"`
	AllTips           []TipResponse      `json:"allTips"`
}

// CleanupResponse represents the result of removing self-payment tips
type CleanupResponse struct {
	Message     string `json:"message"`
	DeletedTips int64  `json:"deletedTips"`
}

// ReconcileResponse represents the result of a totals reconciliation
type ReconcileResponse struct {
	Message         string `json:"message"`
	UpdatedCreators int64  `json:"updatedCreators"`
}

// TransactionResponse represents an on-chain transaction lookup
type TransactionResponse struct {
	Signature          string      `json:"signature"`
	BlockTime          *int64      `json:"blockTime"`
	Slot               uint64      `json:"slot"`
	ConfirmationStatus string      `json:"confirmationStatus"`
	Err                interface{} `json:"err"`
	Fee                uint64      `json:"fee"`
}

// UploadResponse represents an uploaded file
type UploadResponse struct {
	URL string `json:"url"`
}
