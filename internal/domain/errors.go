package domain

import "errors"

var (
	// ErrCreatorNotFound is returned when no creator exists for a wallet address
	ErrCreatorNotFound = errors.New("creator not found")

	// ErrUsernameTaken is returned when a username belongs to a different wallet
	ErrUsernameTaken = errors.New("username already taken")

	// ErrSelfTip is returned when the sender and recipient of a tip are the same wallet
	ErrSelfTip = errors.New("cannot send tips to yourself")

	// ErrInvalidSignature is returned when a wallet signature does not verify
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidPublicKey is returned when a wallet address is not a valid ed25519 public key
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidAmount is returned when a tip amount is not positive or below one base unit
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTransactionNotFound is returned when a transaction signature is unknown to the chain
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInsufficientFunds is returned when the paying wallet cannot cover the transfer or fees
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBlockhashUnavailable is returned when no endpoint could provide a recent blockhash
	ErrBlockhashUnavailable = errors.New("failed to get latest blockhash")

	// ErrUnsupportedMediaType is returned when an uploaded file is not an image
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFileTooLarge is returned when an uploaded file exceeds the configured size limit
	ErrFileTooLarge = errors.New("file too large")
)
