package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sosiol/sosiol/internal/adapter"
	apierrors "github.com/sosiol/sosiol/internal/api/shared/errors"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/metrics"
)

// visitorIdleTTL is how long an idle client's limiter is kept
const visitorIdleTTL = 10 * time.Minute

// RateLimitConfig holds the per-client write limit
type RateLimitConfig struct {
	RequestsPerMinute float64
	Burst             int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	config  RateLimitConfig
	clock   adapter.Clock
	metrics *metrics.Metrics

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter creates a rate limiter. Non-positive settings fall back to one request per
// second with a burst of one.
func NewRateLimiter(config RateLimitConfig, clock adapter.Clock, m *metrics.Metrics) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	return &RateLimiter{
		config:    config,
		clock:     clock,
		metrics:   m,
		visitors:  make(map[string]*visitor),
		lastSweep: clock.Now(),
	}
}

// Middleware returns a gin middleware answering 429 once a client exhausts its bucket
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := r.clock.Now()
		if !r.limiter(c.ClientIP(), now).AllowN(now, 1) {
			r.metrics.Throttled(c.FullPath())
			logger.DebugCtx(c.Request.Context(), "Rate limited request",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, apierrors.NewRateLimitedError("Too many requests"))
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) limiter(id string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) > visitorIdleTTL {
		for key, v := range r.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(r.visitors, key)
			}
		}
		r.lastSweep = now
	}

	v, ok := r.visitors[id]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(r.config.RequestsPerMinute/60.0), r.config.Burst),
		}
		r.visitors[id] = v
	}
	v.lastSeen = now

	return v.limiter
}

// Len returns the number of tracked clients
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}
