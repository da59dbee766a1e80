package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sosiol/sosiol/internal/domain"
)

const (
	DEFAULT_RPC_URL = "https://api.mainnet-beta.solana.com"

	VERIFICATION_TRUST = "trust"
	VERIFICATION_RPC   = "rpc"

	UPLOAD_PROVIDER_LOCAL      = "local"
	UPLOAD_PROVIDER_CLOUDFLARE = "cloudflare"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m", "30m"
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// CORSConfig holds the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration for operator routes
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RateLimitConfig holds the per-client limit on write routes
type RateLimitConfig struct {
	RequestsPerMinute float64 `mapstructure:"requests_per_minute"`
	Burst             int     `mapstructure:"burst"`
}

// SolanaConfig holds Solana cluster configuration
type SolanaConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	USDCMint        string        `mapstructure:"usdc_mint"`
	FallbackRPCURLs []string      `mapstructure:"fallback_rpc_urls"`
	BlockhashTTL    time.Duration `mapstructure:"blockhash_ttl"`
	RetryPause      time.Duration `mapstructure:"retry_pause"`
	FinalRetryPause time.Duration `mapstructure:"final_retry_pause"`
	// Sandbox allows a placeholder blockhash when every endpoint fails. Development only.
	Sandbox        bool          `mapstructure:"sandbox"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Endpoints returns the primary RPC URL followed by the fallbacks, without duplicates
func (c *SolanaConfig) Endpoints() []string {
	seen := make(map[string]bool, len(c.FallbackRPCURLs)+1)
	endpoints := make([]string, 0, len(c.FallbackRPCURLs)+1)
	for _, url := range append([]string{c.RPCURL}, c.FallbackRPCURLs...) {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		endpoints = append(endpoints, url)
	}
	return endpoints
}

// TipsConfig holds tip recording configuration
type TipsConfig struct {
	// Verification is either "trust" or "rpc"
	Verification string `mapstructure:"verification"`
}

// UploadConfig holds avatar upload configuration
type UploadConfig struct {
	Provider      string `mapstructure:"provider"`
	Dir           string `mapstructure:"dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxSize       int64  `mapstructure:"max_size"`
}

// CloudflareConfig holds Cloudflare Images configuration
type CloudflareConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
}

// SweeperConfig holds totals sweeper configuration
type SweeperConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Solana     SolanaConfig     `mapstructure:"solana"`
	Tips       TipsConfig       `mapstructure:"tips"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
}

// SweeperProgramConfig holds configuration for the sweeper program
type SweeperProgramConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Sweeper    SweeperConfig  `mapstructure:"sweeper"`
}

// TipCtlConfig holds configuration for the tipctl command line tool
type TipCtlConfig struct {
	BaseConfig `mapstructure:",squash"`
	Solana     SolanaConfig `mapstructure:"solana"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setSolanaDefaults(v)
	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("tips.verification", VERIFICATION_TRUST)
	v.SetDefault("upload.provider", UPLOAD_PROVIDER_LOCAL)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size", 5*1024*1024) // 5MB

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Tips.Verification {
	case VERIFICATION_TRUST, VERIFICATION_RPC:
	default:
		return nil, fmt.Errorf("tips.verification must be %q or %q, got %q",
			VERIFICATION_TRUST, VERIFICATION_RPC, cfg.Tips.Verification)
	}

	switch cfg.Upload.Provider {
	case UPLOAD_PROVIDER_LOCAL:
	case UPLOAD_PROVIDER_CLOUDFLARE:
		if cfg.Cloudflare.AccountID == "" || cfg.Cloudflare.APIToken == "" {
			return nil, errors.New("cloudflare.account_id and cloudflare.api_token are required for the cloudflare upload provider")
		}
	default:
		return nil, fmt.Errorf("unknown upload.provider: %q", cfg.Upload.Provider)
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperProgramConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("sweeper.interval", "10m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperProgramConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.Sweeper.Interval <= 0 {
		return nil, errors.New("sweeper.interval must be positive")
	}

	return &cfg, nil
}

// LoadTipCtlConfig loads configuration for the tipctl command line tool
func LoadTipCtlConfig(configFile string, envPath string) (*TipCtlConfig, error) {
	v := configureViper("tipctl", configFile, envPath)

	setSolanaDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg TipCtlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setSolanaDefaults(v *viper.Viper) {
	v.SetDefault("solana.rpc_url", DEFAULT_RPC_URL)
	v.SetDefault("solana.usdc_mint", domain.USDC_MAINNET_MINT)
	v.SetDefault("solana.blockhash_ttl", "30s")
	v.SetDefault("solana.retry_pause", "2s")
	v.SetDefault("solana.final_retry_pause", "5s")
	v.SetDefault("solana.sandbox", false)
	v.SetDefault("solana.request_timeout", "15s")
}

// readConfig reads the config file. A missing file is not an error; env vars and defaults apply.
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SOSIOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.trusted_proxies",
		"cors.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		"rate_limit.requests_per_minute",
		"rate_limit.burst",
		// Solana
		"solana.rpc_url",
		"solana.usdc_mint",
		"solana.fallback_rpc_urls",
		"solana.blockhash_ttl",
		"solana.retry_pause",
		"solana.final_retry_pause",
		"solana.sandbox",
		"solana.request_timeout",
		"tips.verification",
		// Upload
		"upload.provider",
		"upload.dir",
		"upload.public_base_url",
		"upload.max_size",
		// Cloudflare
		"cloudflare.account_id",
		"cloudflare.api_token",
		"sweeper.interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
