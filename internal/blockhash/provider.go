package blockhash

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
)

// DefaultPlaceholder is the blockhash substituted in sandbox mode when every endpoint fails.
// Transactions built with it are never accepted by a real cluster.
const DefaultPlaceholder = "11111111111111111111111111111111"

// Provider returns a recent blockhash, potentially from cache
//
//go:generate mockgen -source=provider.go -destination=../mocks/blockhash.go -package=mocks -mock_names=Provider=MockBlockhashProvider,Fetcher=MockBlockhashFetcher
type Provider interface {
	GetBlockhash(ctx context.Context) (string, error)
}

// Fetcher fetches the latest blockhash from a single RPC endpoint
type Fetcher interface {
	GetLatestBlockhash(ctx context.Context, endpoint string) (string, error)
}

// Config holds configuration for the blockhash provider
type Config struct {
	// Endpoints are tried in order on a cache miss
	Endpoints []string

	// TTL is how long a fetched blockhash is reused
	TTL time.Duration

	// RetryPause separates consecutive failed endpoint attempts
	RetryPause time.Duration

	// FinalRetryPause precedes the last attempt against the first endpoint
	FinalRetryPause time.Duration

	// Sandbox substitutes Placeholder when every attempt fails. Never enable against a real cluster.
	Sandbox bool

	// Placeholder defaults to DefaultPlaceholder
	Placeholder string
}

type cachedBlockhash struct {
	value     string
	fetchedAt time.Time
}

type provider struct {
	fetcher Fetcher
	config  Config
	clock   adapter.Clock

	mu     sync.RWMutex
	cached *cachedBlockhash
}

// NewProvider creates a Provider with TTL caching and an ordered endpoint fallback chain
func NewProvider(fetcher Fetcher, config Config, clock adapter.Clock) Provider {
	if config.Placeholder == "" {
		config.Placeholder = DefaultPlaceholder
	}
	return &provider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetBlockhash returns the cached blockhash while it is younger than the TTL, otherwise walks the
// endpoint list
func (p *provider) GetBlockhash(ctx context.Context) (string, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()

	if cached != nil && p.clock.Now().Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached blockhash", zap.String("blockhash", cached.value))
		return cached.value, nil
	}

	if len(p.config.Endpoints) == 0 {
		return "", fmt.Errorf("%w: no endpoints configured", domain.ErrBlockhashUnavailable)
	}

	var lastErr error
	for i, endpoint := range p.config.Endpoints {
		hash, err := p.attempt(ctx, endpoint)
		if err == nil {
			return hash, nil
		}
		if errors.Is(err, domain.ErrInsufficientFunds) || ctx.Err() != nil {
			return "", err
		}
		lastErr = err

		if i < len(p.config.Endpoints)-1 {
			if err := p.pause(ctx, p.config.RetryPause); err != nil {
				return "", err
			}
		}
	}

	logger.WarnCtx(ctx, "All blockhash endpoints failed, retrying first endpoint",
		zap.Duration("pause", p.config.FinalRetryPause))
	if err := p.pause(ctx, p.config.FinalRetryPause); err != nil {
		return "", err
	}

	hash, err := p.attempt(ctx, p.config.Endpoints[0])
	if err == nil {
		return hash, nil
	}
	if errors.Is(err, domain.ErrInsufficientFunds) || ctx.Err() != nil {
		return "", err
	}
	lastErr = err

	if p.config.Sandbox {
		logger.WarnCtx(ctx, "Using placeholder blockhash in sandbox mode")
		return p.config.Placeholder, nil
	}

	return "", fmt.Errorf("%w: %v", domain.ErrBlockhashUnavailable, lastErr)
}

// attempt fetches from one endpoint and caches on success
func (p *provider) attempt(ctx context.Context, endpoint string) (string, error) {
	hash, err := p.fetcher.GetLatestBlockhash(ctx, endpoint)
	if err == nil {
		p.mu.Lock()
		p.cached = &cachedBlockhash{value: hash, fetchedAt: p.clock.Now()}
		p.mu.Unlock()

		logger.DebugCtx(ctx, "Fetched blockhash", zap.String("endpoint", endpoint), zap.String("blockhash", hash))
		return hash, nil
	}

	kind := Classify(err)
	logger.WarnCtx(ctx, "Blockhash fetch failed",
		zap.String("endpoint", endpoint),
		zap.Stringer("kind", kind),
		zap.Error(err))

	if kind == InsufficientFunds {
		return "", fmt.Errorf("%w: %v", domain.ErrInsufficientFunds, err)
	}
	return "", err
}

func (p *provider) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-p.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
