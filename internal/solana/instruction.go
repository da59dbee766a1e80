package solana

import (
	"encoding/binary"
)

// AccountMeta describes how an instruction uses an account
type AccountMeta struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single program invocation before message compilation
type Instruction struct {
	ProgramID PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// SPL token instruction discriminators
const (
	tokenInstructionTransfer uint8 = 3
)

// NewCreateAssociatedTokenAccountInstruction creates the associated token account for owner and
// mint, funded by payer
func NewCreateAssociatedTokenAccountInstruction(payer, associatedToken, owner, mint PublicKey) Instruction {
	return Instruction{
		ProgramID: AssociatedTokenProgramID,
		Accounts: []AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: associatedToken, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: SystemProgramID, IsSigner: false, IsWritable: false},
			{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		},
		Data: []byte{},
	}
}

// NewTransferInstruction moves amount base units between two token accounts of the same mint
func NewTransferInstruction(source, destination, owner PublicKey, amount uint64) Instruction {
	data := make([]byte, 9)
	data[0] = tokenInstructionTransfer
	binary.LittleEndian.PutUint64(data[1:], amount)

	return Instruction{
		ProgramID: TokenProgramID,
		Accounts: []AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		Data: data,
	}
}
