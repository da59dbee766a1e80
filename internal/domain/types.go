package domain

import (
	"strings"
	"unicode/utf8"
)

// TipStatus represents the lifecycle state of a tip
type TipStatus string

const (
	TipStatusPending   TipStatus = "pending"
	TipStatusCompleted TipStatus = "completed"
	TipStatusFailed    TipStatus = "failed"
)

// Valid checks if the tip status is one of the known statuses
func (s TipStatus) Valid() bool {
	return s == TipStatusPending ||
		s == TipStatusCompleted ||
		s == TipStatusFailed
}

// NormalizeUsername lowercases and trims a username so lookups and uniqueness are case-insensitive
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidUsernameLength checks the normalized username length in characters
func ValidUsernameLength(username string) bool {
	n := utf8.RuneCountInString(NormalizeUsername(username))
	return n >= USERNAME_MIN_LENGTH && n <= USERNAME_MAX_LENGTH
}

// IsSelfTip reports whether a tip would be sent from a wallet to itself
func IsSelfTip(fromWallet, toWallet string) bool {
	return fromWallet == toWallet
}
