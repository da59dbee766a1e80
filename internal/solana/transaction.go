package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// SignatureLength is the byte length of an ed25519 signature
const SignatureLength = 64

// Signature is an ed25519 transaction signature
type Signature [SignatureLength]byte

// SignatureFromBase58 decodes a base58 transaction signature
func SignatureFromBase58(s string) (Signature, error) {
	var sig Signature
	b, err := base58.Decode(s)
	if err != nil {
		return sig, fmt.Errorf("invalid base58 signature %q: %w", s, err)
	}
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("invalid signature length %d for %q", len(b), s)
	}
	copy(sig[:], b)
	return sig, nil
}

func (sig Signature) String() string {
	return base58.Encode(sig[:])
}

// MessageHeader counts the signer and read-only accounts at the front of the key list
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by their index in the message key list
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is a compiled legacy transaction message
type Message struct {
	Header          MessageHeader
	AccountKeys     []PublicKey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

// Transaction is a legacy transaction with one signature slot per required signer
type Transaction struct {
	Signatures []Signature
	Message    Message
}

type accountEntry struct {
	meta  AccountMeta
	order int
}

// NewTransaction compiles instructions into an unsigned transaction paid by feePayer
func NewTransaction(instructions []Instruction, recentBlockhash Hash, feePayer PublicKey) (*Transaction, error) {
	if len(instructions) == 0 {
		return nil, errors.New("transaction requires at least one instruction")
	}

	message, err := compileMessage(instructions, recentBlockhash, feePayer)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Signatures: make([]Signature, message.Header.NumRequiredSignatures),
		Message:    *message,
	}, nil
}

func compileMessage(instructions []Instruction, recentBlockhash Hash, feePayer PublicKey) (*Message, error) {
	entries := map[PublicKey]*accountEntry{}
	var ordered []*accountEntry

	add := func(meta AccountMeta) {
		if e, ok := entries[meta.PublicKey]; ok {
			e.meta.IsSigner = e.meta.IsSigner || meta.IsSigner
			e.meta.IsWritable = e.meta.IsWritable || meta.IsWritable
			return
		}
		e := &accountEntry{meta: meta, order: len(ordered)}
		entries[meta.PublicKey] = e
		ordered = append(ordered, e)
	}

	add(AccountMeta{PublicKey: feePayer, IsSigner: true, IsWritable: true})
	for _, ix := range instructions {
		for _, acc := range ix.Accounts {
			add(acc)
		}
		add(AccountMeta{PublicKey: ix.ProgramID})
	}

	// Fee payer first, then writable signers, readonly signers, writable and readonly non-signers
	var groups [4][]PublicKey
	for _, e := range ordered {
		switch {
		case e.meta.IsSigner && e.meta.IsWritable:
			groups[0] = append(groups[0], e.meta.PublicKey)
		case e.meta.IsSigner:
			groups[1] = append(groups[1], e.meta.PublicKey)
		case e.meta.IsWritable:
			groups[2] = append(groups[2], e.meta.PublicKey)
		default:
			groups[3] = append(groups[3], e.meta.PublicKey)
		}
	}

	keys := make([]PublicKey, 0, len(ordered))
	for _, g := range groups {
		keys = append(keys, g...)
	}
	if len(keys) > 256 {
		return nil, fmt.Errorf("too many accounts: %d", len(keys))
	}

	index := make(map[PublicKey]uint8, len(keys))
	for i, k := range keys {
		index[k] = uint8(i) //nolint:gosec,G115
	}

	message := &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(len(groups[0]) + len(groups[1])), //nolint:gosec,G115
			NumReadonlySignedAccounts:   uint8(len(groups[1])),                  //nolint:gosec,G115
			NumReadonlyUnsignedAccounts: uint8(len(groups[3])),                  //nolint:gosec,G115
		},
		AccountKeys:     keys,
		RecentBlockhash: recentBlockhash,
		Instructions:    make([]CompiledInstruction, len(instructions)),
	}

	for i, ix := range instructions {
		accounts := make([]uint8, len(ix.Accounts))
		for j, acc := range ix.Accounts {
			accounts[j] = index[acc.PublicKey]
		}
		message.Instructions[i] = CompiledInstruction{
			ProgramIDIndex: index[ix.ProgramID],
			Accounts:       accounts,
			Data:           ix.Data,
		}
	}

	return message, nil
}

// MarshalBinary serializes the message in the legacy wire format. These are the bytes signers sign.
func (m *Message) MarshalBinary() ([]byte, error) {
	buf := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	}

	buf = appendCompactU16(buf, len(m.AccountKeys))
	for _, k := range m.AccountKeys {
		buf = append(buf, k[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	buf = appendCompactU16(buf, len(m.Instructions))
	for _, ix := range m.Instructions {
		buf = append(buf, ix.ProgramIDIndex)
		buf = appendCompactU16(buf, len(ix.Accounts))
		buf = append(buf, ix.Accounts...)
		buf = appendCompactU16(buf, len(ix.Data))
		buf = append(buf, ix.Data...)
	}

	return buf, nil
}

// Signers returns the accounts that must sign, in signature slot order
func (tx *Transaction) Signers() []PublicKey {
	return tx.Message.AccountKeys[:tx.Message.Header.NumRequiredSignatures]
}

// FeePayer returns the account paying the transaction fee
func (tx *Transaction) FeePayer() PublicKey {
	return tx.Message.AccountKeys[0]
}

// Sign fills the signature slot belonging to the key's public half
func (tx *Transaction) Sign(key ed25519.PrivateKey) error {
	pub, err := PublicKeyFromBytes(key.Public().(ed25519.PublicKey))
	if err != nil {
		return err
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return err
	}

	for i, signer := range tx.Signers() {
		if signer == pub {
			copy(tx.Signatures[i][:], ed25519.Sign(key, message))
			return nil
		}
	}

	return fmt.Errorf("%s is not a required signer", pub)
}

// MarshalBinary serializes the transaction with its signature slots; unsigned slots are zero
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := appendCompactU16(nil, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		buf = append(buf, sig[:]...)
	}
	return append(buf, message...), nil
}

// ToBase64 returns the wire encoding accepted by wallets and sendTransaction
func (tx *Transaction) ToBase64() (string, error) {
	b, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
