package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/api/middleware"
	"github.com/sosiol/sosiol/internal/api/rest"
	"github.com/sosiol/sosiol/internal/api/shared/constants"
	"github.com/sosiol/sosiol/internal/api/shared/executor"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/metrics"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	// TrustedProxies are the only peers whose X-Forwarded-For is honored
	TrustedProxies []string
	Auth           middleware.AuthConfig
	RateLimit      middleware.RateLimitConfig
	// UploadDir is served under /uploads when avatars are stored locally
	UploadDir string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	metrics    *metrics.Metrics
	clock      adapter.Clock
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, exec executor.Executor, m *metrics.Metrics, clock adapter.Clock) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		metrics:  m,
		clock:    clock,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = constants.MAX_MULTIPART_MEMORY
	if err := router.SetTrustedProxies(s.config.TrustedProxies); err != nil {
		logger.Warn("Invalid trusted proxies, forwarded headers are ignored",
			zap.Strings("trusted_proxies", s.config.TrustedProxies),
			zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(s.metrics))
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	limiter := middleware.NewRateLimiter(s.config.RateLimit, s.clock, s.metrics)
	restHandler := rest.NewHandler(s.config.Debug, s.executor, s.clock)
	rest.SetupRoutes(router, restHandler, rest.RouteConfig{
		Auth:       s.config.Auth,
		WriteLimit: limiter.Middleware(),
		UploadDir:  s.config.UploadDir,
	})

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.InfoCtx(ctx, "Starting API server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.InfoCtx(ctx, "Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
