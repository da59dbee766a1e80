package verifier

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/mr-tron/base58"

	"github.com/sosiol/sosiol/internal/solana"
)

// VerifyWalletSignature reports whether signature is a valid detached ed25519 signature of message
// by the wallet. Signatures are base58, with base64 accepted as a fallback. Any decoding failure
// yields false.
func VerifyWalletSignature(walletAddress, message, signature string) bool {
	pk, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return false
	}

	sig, ok := decodeSignature(signature)
	if !ok {
		return false
	}

	return ed25519.Verify(pk.ED25519(), []byte(message), sig)
}

func decodeSignature(signature string) ([]byte, bool) {
	if signature == "" {
		return nil, false
	}
	if sig, err := base58.Decode(signature); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, true
	}
	if sig, err := base64.StdEncoding.DecodeString(signature); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, true
	}
	return nil, false
}
