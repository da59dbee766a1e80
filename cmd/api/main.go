package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/api/middleware"
	"github.com/sosiol/sosiol/internal/api/server"
	"github.com/sosiol/sosiol/internal/api/shared/executor"
	"github.com/sosiol/sosiol/internal/config"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/metrics"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/store"
	"github.com/sosiol/sosiol/internal/store/schema"
	"github.com/sosiol/sosiol/internal/upload"
	"github.com/sosiol/sosiol/internal/verifier"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	migrate    = flag.Bool("migrate", true, "Create or update tables on startup")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "api-server",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sosiol API")

	// Connect to database
	db, err := store.ConnectPostgres(ctx, cfg.Database.DSN(), time.Minute)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err),
			zap.String("host", cfg.Database.Host),
			zap.String("dbname", cfg.Database.DBName))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if *migrate {
		if err := schema.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Solana.RequestTimeout)

	// Solana RPC lookups from request handlers are single-attempt
	rpcClient := rpc.NewClient(httpClient, cfg.Solana.RPCURL)

	payments, err := verifier.New(cfg.Tips.Verification, rpcClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create payment verifier", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Tip verification configured", zap.String("mode", cfg.Tips.Verification))

	// Avatar storage
	var storage upload.Storage
	switch cfg.Upload.Provider {
	case config.UPLOAD_PROVIDER_CLOUDFLARE:
		cfClient, err := adapter.NewCloudflareClient(cfg.Cloudflare.APIToken)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create Cloudflare client", zap.Error(err))
		}
		storage = upload.NewCloudflareStorage(cfClient, cfg.Cloudflare.AccountID)
	default:
		storage = upload.NewLocalStorage(adapter.NewFileSystem(), cfg.Upload.Dir, cfg.Upload.PublicBaseURL)
	}
	uploader := upload.NewUploader(storage, cfg.Upload.MaxSize)
	logger.InfoCtx(ctx, "Avatar storage configured",
		zap.String("provider", storage.Name()),
		zap.Int64("max_size", uploader.MaxSize()))

	m := metrics.New()
	exec := executor.NewExecutor(dataStore, payments, rpcClient, uploader, m)

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
	}
	if storage.Name() == upload.PROVIDER_LOCAL {
		serverConfig.UploadDir = cfg.Upload.Dir
	}

	// Create and start server
	srv := server.New(serverConfig, exec, m, clock)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
