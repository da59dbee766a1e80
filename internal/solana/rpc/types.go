package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CodeInvalidParams is the JSON-RPC code for malformed method parameters
const CodeInvalidParams = -32602

// Request is a JSON-RPC 2.0 request
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// Response is a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is an error object returned by the node
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Data) > 0 && string(e.Data) != "null" {
		return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// IsInvalidParams reports whether err carries a node rejection of the request parameters
func IsInvalidParams(err error) bool {
	var rpcErr *Error
	return errors.As(err, &rpcErr) && rpcErr.Code == CodeInvalidParams
}

// Commitment levels
const (
	CommitmentFinalized = "finalized"
	CommitmentConfirmed = "confirmed"
)

// ResponseContext is attached to every "value" style result
type ResponseContext struct {
	Slot uint64 `json:"slot"`
}

// LatestBlockhash is the value of getLatestBlockhash
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

type latestBlockhashResult struct {
	Context ResponseContext `json:"context"`
	Value   LatestBlockhash `json:"value"`
}

// AccountInfo is the value of getAccountInfo. Data is [payload, encoding].
type AccountInfo struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
	RentEpoch  uint64   `json:"rentEpoch"`
	Space      uint64   `json:"space"`
}

type accountInfoResult struct {
	Context ResponseContext `json:"context"`
	Value   *AccountInfo    `json:"value"`
}

// TokenAmount is the value of getTokenAccountBalance
type TokenAmount struct {
	Amount         string   `json:"amount"`
	Decimals       uint8    `json:"decimals"`
	UIAmount       *float64 `json:"uiAmount"`
	UIAmountString string   `json:"uiAmountString"`
}

type tokenAmountResult struct {
	Context ResponseContext `json:"context"`
	Value   TokenAmount     `json:"value"`
}

// TransactionResponse is the result of getTransaction
type TransactionResponse struct {
	Slot        uint64           `json:"slot"`
	BlockTime   *int64           `json:"blockTime"`
	Transaction json.RawMessage  `json:"transaction"`
	Meta        *TransactionMeta `json:"meta"`
}

// TransactionMeta carries the execution status of a transaction
type TransactionMeta struct {
	Err          interface{} `json:"err"`
	Fee          uint64      `json:"fee"`
	PreBalances  []uint64    `json:"preBalances"`
	PostBalances []uint64    `json:"postBalances"`
	LogMessages  []string    `json:"logMessages"`
}

// Failed reports whether the transaction executed with an error
func (t *TransactionResponse) Failed() bool {
	return t.Meta != nil && t.Meta.Err != nil
}
