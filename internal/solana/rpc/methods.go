package rpc

import (
	"context"
	"fmt"
)

// GetLatestBlockhash returns the most recent finalized blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (*LatestBlockhash, error) {
	params := []interface{}{
		map[string]string{"commitment": CommitmentFinalized},
	}

	var result latestBlockhashResult
	if err := c.call(ctx, "getLatestBlockhash", params, &result); err != nil {
		return nil, fmt.Errorf("getLatestBlockhash: %w", err)
	}
	if result.Value.Blockhash == "" {
		return nil, fmt.Errorf("getLatestBlockhash: empty blockhash")
	}
	return &result.Value, nil
}

// GetAccountInfo returns the account at address, or nil if it does not exist
func (c *Client) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	params := []interface{}{
		address,
		map[string]string{
			"encoding":   "base64",
			"commitment": CommitmentConfirmed,
		},
	}

	var result accountInfoResult
	if err := c.call(ctx, "getAccountInfo", params, &result); err != nil {
		return nil, fmt.Errorf("getAccountInfo(%s): %w", address, err)
	}
	return result.Value, nil
}

// GetTransaction returns a confirmed transaction by signature, or nil if the node has no record of it
func (c *Client) GetTransaction(ctx context.Context, signature string) (*TransactionResponse, error) {
	params := []interface{}{
		signature,
		map[string]interface{}{
			"encoding":                       "json",
			"commitment":                     CommitmentConfirmed,
			"maxSupportedTransactionVersion": 0,
		},
	}

	var result *TransactionResponse
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, fmt.Errorf("getTransaction(%s): %w", signature, err)
	}
	return result, nil
}

// GetTokenAccountBalance returns the token balance held by a token account
func (c *Client) GetTokenAccountBalance(ctx context.Context, address string) (*TokenAmount, error) {
	params := []interface{}{
		address,
		map[string]string{"commitment": CommitmentConfirmed},
	}

	var result tokenAmountResult
	if err := c.call(ctx, "getTokenAccountBalance", params, &result); err != nil {
		return nil, fmt.Errorf("getTokenAccountBalance(%s): %w", address, err)
	}
	return &result.Value, nil
}
