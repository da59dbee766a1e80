package solana

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
	pdaMarker     = "ProgramDerivedAddress"
)

var (
	// ErrNoViableBump is returned when no bump seed yields an off-curve address
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")

	// ErrOwnerOffCurve is returned when a token account owner is not a wallet key
	ErrOwnerOffCurve = errors.New("token owner is off the ed25519 curve")
)

// CreateProgramAddress derives a program address from seeds and a program id.
// The derived address must not be a valid ed25519 point.
func CreateProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, error) {
	if len(seeds) > maxSeeds {
		return PublicKey{}, fmt.Errorf("too many seeds: %d", len(seeds))
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return PublicKey{}, fmt.Errorf("seed too long: %d bytes", len(seed))
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	sum := h.Sum(nil)

	if IsOnCurve(sum) {
		return PublicKey{}, errors.New("derived address is on the ed25519 curve")
	}

	return PublicKeyFromBytes(sum)
}

// FindProgramAddress searches bump seeds from 255 down and returns the first off-curve address
func FindProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		address, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return address, uint8(bump), nil
		}
	}

	return PublicKey{}, 0, ErrNoViableBump
}

// FindAssociatedTokenAddress returns the deterministic token account holding mint for owner.
// Owners must be wallet keys; program derived owners are rejected.
func FindAssociatedTokenAddress(owner PublicKey, mint PublicKey) (PublicKey, error) {
	if !IsOnCurve(owner[:]) {
		return PublicKey{}, fmt.Errorf("%s: %w", owner, ErrOwnerOffCurve)
	}

	address, _, err := FindProgramAddress([][]byte{
		owner[:],
		TokenProgramID[:],
		mint[:],
	}, AssociatedTokenProgramID)
	if err != nil {
		return PublicKey{}, fmt.Errorf("failed to derive associated token address: %w", err)
	}
	return address, nil
}
