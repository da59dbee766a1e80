package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/logger"
)

const contentTypeJSON = "application/json"

// Client is a JSON-RPC client for a single Solana node endpoint
type Client struct {
	httpClient adapter.HTTPClient
	url        string
	retry      bool
	requestID  atomic.Int64
}

// Option configures a Client
type Option func(*Client)

// WithRetry retries rate limited and network-failed requests with backoff.
// Requests are single-attempt by default.
func WithRetry() Option {
	return func(c *Client) {
		c.retry = true
	}
}

// NewClient creates a client for the node at url
func NewClient(httpClient adapter.HTTPClient, url string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		url:        url,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this client talks to
func (c *Client) URL() string {
	return c.url
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	req := Request{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var respBody []byte
	if c.retry {
		respBody, err = c.httpClient.Post(ctx, c.url, contentTypeJSON, body)
	} else {
		respBody, err = c.httpClient.PostOnce(ctx, c.url, contentTypeJSON, body)
	}
	if err != nil {
		return err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.Error != nil {
		logger.DebugCtx(ctx, "RPC returned an error",
			zap.String("method", method),
			zap.Int("code", resp.Error.Code),
			zap.String("message", resp.Error.Message))
		return resp.Error
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s result: %w", method, err)
	}
	return nil
}
