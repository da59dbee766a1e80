package solana

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the byte length of a Solana account address
const PublicKeyLength = 32

// PublicKey is a Solana account address. Wallet addresses are ed25519 public keys,
// program derived addresses are deliberately off the curve.
type PublicKey [PublicKeyLength]byte

// PublicKeyFromBase58 decodes a base58 account address
func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	b, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("invalid base58 public key %q: %w", s, err)
	}
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key length %d for %q", len(b), s)
	}
	copy(pk[:], b)
	return pk, nil
}

// MustPublicKeyFromBase58 decodes a base58 account address and panics on error.
// Only used for compile-time constants.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key length %d", len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Bytes returns a copy of the key bytes
func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, pk[:])
	return b
}

// Equals reports whether both keys are the same address
func (pk PublicKey) Equals(other PublicKey) bool {
	return pk == other
}

// IsZero reports whether the key is all zero bytes
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// ED25519 returns the key as a standard library ed25519 public key
func (pk PublicKey) ED25519() ed25519.PublicKey {
	return ed25519.PublicKey(pk.Bytes())
}

// IsOnCurve reports whether the key decodes to a point on the ed25519 curve
func IsOnCurve(b []byte) bool {
	if len(b) != PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// Hash is a 32-byte value such as a recent blockhash
type Hash [32]byte

// HashFromBase58 decodes a base58 encoded 32-byte hash
func HashFromBase58(s string) (Hash, error) {
	var h Hash
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("invalid base58 hash %q: %w", s, err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invalid hash length %d for %q", len(b), s)
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}
