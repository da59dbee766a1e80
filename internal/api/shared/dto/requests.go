package dto

import (
	"strings"
	"unicode/utf8"

	apierrors "github.com/sosiol/sosiol/internal/api/shared/errors"
	"github.com/sosiol/sosiol/internal/domain"
)

// UpsertCreatorRequest represents the request body for creating or updating a creator profile.
// The message must be signed by the wallet's key.
type UpsertCreatorRequest struct {
	WalletAddress string `json:"walletAddress"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Bio           string `json:"bio"`
	AvatarURL     string `json:"avatarUrl"`
	CoverImageURL string `json:"coverImageUrl"`
	Signature     string `json:"signature"`
	Message       string `json:"message"`
}

// Validate validates the request body and normalizes the username
func (r *UpsertCreatorRequest) Validate() error {
	var failures []string

	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	if r.WalletAddress == "" {
		failures = append(failures, "walletAddress is required")
	}

	r.Username = domain.NormalizeUsername(r.Username)
	if !domain.ValidUsernameLength(r.Username) {
		failures = append(failures, "username must be between 3 and 30 characters")
	}

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if n := utf8.RuneCountInString(r.DisplayName); n < 1 || n > domain.DISPLAY_NAME_MAX_LENGTH {
		failures = append(failures, "displayName must be between 1 and 50 characters")
	}

	if utf8.RuneCountInString(r.Bio) > domain.BIO_MAX_LENGTH {
		failures = append(failures, "bio must be at most 500 characters")
	}

	if r.Signature == "" {
		failures = append(failures, "signature is required")
	}

	if r.Message == "" {
		failures = append(failures, "message is required")
	}

	if len(failures) > 0 {
		return apierrors.NewValidationError(failures...)
	}

	return nil
}

// CreateTipRequest represents the request body for recording a tip
type CreateTipRequest struct {
	FromWallet           string   `json:"fromWallet"`
	ToCreatorWallet      string   `json:"toCreatorWallet"`
	AmountUSDC           *float64 `json:"amountUSDC"`
	TransactionSignature string   `json:"transactionSignature"`
	Message              *string  `json:"message"`
}

// Validate validates the request body
func (r *CreateTipRequest) Validate() error {
	var failures []string

	if strings.TrimSpace(r.FromWallet) == "" {
		failures = append(failures, "fromWallet is required")
	}

	if strings.TrimSpace(r.ToCreatorWallet) == "" {
		failures = append(failures, "toCreatorWallet is required")
	}

	if r.AmountUSDC == nil || !(*r.AmountUSDC > 0) {
		failures = append(failures, "amountUSDC must be greater than 0")
	}

	if strings.TrimSpace(r.TransactionSignature) == "" {
		failures = append(failures, "transactionSignature is required")
	}

	if r.Message != nil && utf8.RuneCountInString(*r.Message) > domain.TIP_MESSAGE_MAX_LENGTH {
		failures = append(failures, "message must be at most 280 characters")
	}

	if len(failures) > 0 {
		return apierrors.NewValidationError(failures...)
	}

	return nil
}
