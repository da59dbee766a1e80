package rpc

import (
	"context"

	"github.com/sosiol/sosiol/internal/adapter"
)

// EndpointFetcher fetches blockhashes from arbitrary endpoints with single-attempt requests
type EndpointFetcher struct {
	httpClient adapter.HTTPClient
}

// NewEndpointFetcher creates an EndpointFetcher
func NewEndpointFetcher(httpClient adapter.HTTPClient) *EndpointFetcher {
	return &EndpointFetcher{httpClient: httpClient}
}

// GetLatestBlockhash returns the latest blockhash known to endpoint
func (f *EndpointFetcher) GetLatestBlockhash(ctx context.Context, endpoint string) (string, error) {
	result, err := NewClient(f.httpClient, endpoint).GetLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return result.Blockhash, nil
}
