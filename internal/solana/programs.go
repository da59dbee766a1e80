package solana

import (
	"github.com/sosiol/sosiol/internal/domain"
)

var (
	// SystemProgramID is the native system program
	SystemProgramID = MustPublicKeyFromBase58(domain.SYSTEM_PROGRAM_ID)

	// TokenProgramID is the SPL token program
	TokenProgramID = MustPublicKeyFromBase58(domain.TOKEN_PROGRAM_ID)

	// AssociatedTokenProgramID is the SPL associated token account program
	AssociatedTokenProgramID = MustPublicKeyFromBase58(domain.ASSOCIATED_TOKEN_PROGRAM_ID)
)
