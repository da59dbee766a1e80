package domain

const (
	// Solana program and mint constants
	USDC_MAINNET_MINT           = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDC_DECIMALS               = 6
	TOKEN_PROGRAM_ID            = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	ASSOCIATED_TOKEN_PROGRAM_ID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	SYSTEM_PROGRAM_ID           = "11111111111111111111111111111111"

	// Creator profile limits
	USERNAME_MIN_LENGTH     = 3
	USERNAME_MAX_LENGTH     = 30
	DISPLAY_NAME_MAX_LENGTH = 50
	BIO_MAX_LENGTH          = 500

	// Tip limits
	TIP_MESSAGE_MAX_LENGTH = 280
)
