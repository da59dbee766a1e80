package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosiol/sosiol/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
  trusted_proxies:
    - "10.0.0.0/8"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
cors:
  allowed_origins:
    - "https://sosiol.app"
auth:
  jwt_public_key: "test-public-key"
  api_keys:
    - "key1"
    - "key2"
rate_limit:
  requests_per_minute: 12
  burst: 3
solana:
  rpc_url: "https://rpc.example.com"
  fallback_rpc_urls:
    - "https://fallback.example.com"
  blockhash_ttl: 10s
  sandbox: true
tips:
  verification: rpc
upload:
  provider: local
  dir: /var/sosiol/uploads
  public_base_url: "https://api.sosiol.app"
  max_size: 1048576
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
				assert.Equal(t, []string{"https://sosiol.app"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, "test-public-key", cfg.Auth.JWTPublicKey)
				assert.Len(t, cfg.Auth.APIKeys, 2)
				assert.Equal(t, 12.0, cfg.RateLimit.RequestsPerMinute)
				assert.Equal(t, 3, cfg.RateLimit.Burst)
				assert.Equal(t, "https://rpc.example.com", cfg.Solana.RPCURL)
				assert.Equal(t, 10*time.Second, cfg.Solana.BlockhashTTL)
				assert.True(t, cfg.Solana.Sandbox)
				assert.Equal(t, domain.USDC_MAINNET_MINT, cfg.Solana.USDCMint)
				assert.Equal(t, VERIFICATION_RPC, cfg.Tips.Verification)
				assert.Equal(t, "/var/sosiol/uploads", cfg.Upload.Dir)
				assert.Equal(t, "https://api.sosiol.app", cfg.Upload.PublicBaseURL)
				assert.Equal(t, int64(1048576), cfg.Upload.MaxSize)
			},
		},
		{
			name:       "missing config file - should work with env vars",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Empty(t, cfg.Server.TrustedProxies)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, DEFAULT_RPC_URL, cfg.Solana.RPCURL)
				assert.Equal(t, domain.USDC_MAINNET_MINT, cfg.Solana.USDCMint)
				assert.Equal(t, 30*time.Second, cfg.Solana.BlockhashTTL)
				assert.Equal(t, 2*time.Second, cfg.Solana.RetryPause)
				assert.Equal(t, 5*time.Second, cfg.Solana.FinalRetryPause)
				assert.False(t, cfg.Solana.Sandbox)
				assert.Equal(t, VERIFICATION_TRUST, cfg.Tips.Verification)
				assert.Equal(t, UPLOAD_PROVIDER_LOCAL, cfg.Upload.Provider)
				assert.Equal(t, "uploads", cfg.Upload.Dir)
				assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
			},
		},
		{
			name: "unknown verification mode",
			configFile: `
tips:
  verification: maybe
`,
			expectError: true,
		},
		{
			name: "cloudflare provider without credentials",
			configFile: `
upload:
  provider: cloudflare
`,
			expectError: true,
		},
		{
			name: "cloudflare provider with credentials",
			configFile: `
upload:
  provider: cloudflare
cloudflare:
  account_id: acct
  api_token: token
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, UPLOAD_PROVIDER_CLOUDFLARE, cfg.Upload.Provider)
				assert.Equal(t, "acct", cfg.Cloudflare.AccountID)
			},
		},
		{
			name: "unknown upload provider",
			configFile: `
upload:
  provider: s3
`,
			expectError: true,
		},
		{
			name:        "invalid yaml",
			configFile:  "server: [unclosed",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var configFile string
			if tt.configFile != "" {
				configFile = writeConfig(t, tt.configFile)
			}

			cfg, err := LoadAPIConfig(configFile, t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SweeperProgramConfig)
	}{
		{
			name: "valid config",
			configFile: `
database:
  host: localhost
  dbname: sosiol
sweeper:
  interval: 1m
`,
			validate: func(t *testing.T, cfg *SweeperProgramConfig) {
				assert.Equal(t, time.Minute, cfg.Sweeper.Interval)
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, 2, cfg.Database.MaxIdleConns)
			},
		},
		{
			name: "default interval",
			configFile: `
database:
  host: localhost
  dbname: sosiol
`,
			validate: func(t *testing.T, cfg *SweeperProgramConfig) {
				assert.Equal(t, 10*time.Minute, cfg.Sweeper.Interval)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: sosiol
`,
			expectError: true,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
		{
			name: "non-positive interval",
			configFile: `
database:
  host: localhost
  dbname: sosiol
sweeper:
  interval: 0s
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSweeperConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadTipCtlConfig(t *testing.T) {
	cfg, err := LoadTipCtlConfig(writeConfig(t, `
solana:
  rpc_url: "https://devnet.example.com"
  usdc_mint: "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
  sandbox: true
`), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://devnet.example.com", cfg.Solana.RPCURL)
	assert.Equal(t, "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU", cfg.Solana.USDCMint)
	assert.True(t, cfg.Solana.Sandbox)
	assert.Equal(t, 15*time.Second, cfg.Solana.RequestTimeout)
}

func TestSolanaConfig_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		config   SolanaConfig
		expected []string
	}{
		{
			name:     "primary only",
			config:   SolanaConfig{RPCURL: "https://a"},
			expected: []string{"https://a"},
		},
		{
			name:     "primary first then fallbacks",
			config:   SolanaConfig{RPCURL: "https://a", FallbackRPCURLs: []string{"https://b", "https://c"}},
			expected: []string{"https://a", "https://b", "https://c"},
		},
		{
			name:     "duplicates and blanks dropped",
			config:   SolanaConfig{RPCURL: "https://a", FallbackRPCURLs: []string{"", "https://a", "https://b", "https://b"}},
			expected: []string{"https://a", "https://b"},
		},
		{
			name:     "nothing configured",
			config:   SolanaConfig{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.Endpoints())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// .env values are exported by godotenv and picked up with the SOSIOL_ prefix
	envContent := `SOSIOL_DEBUG=true
SOSIOL_DATABASE_HOST=env-host
SOSIOL_DATABASE_PORT=6543
SOSIOL_SOLANA_RPC_URL=https://env-rpc.example.com
SOSIOL_TIPS_VERIFICATION=rpc
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	// Per-service file overrides the shared one
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte("SOSIOL_DATABASE_HOST=local-host\n"), 0600))

	t.Cleanup(func() {
		for _, key := range []string{
			"SOSIOL_DEBUG",
			"SOSIOL_DATABASE_HOST",
			"SOSIOL_DATABASE_PORT",
			"SOSIOL_SOLANA_RPC_URL",
			"SOSIOL_TIPS_VERIFICATION",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
solana:
  rpc_url: "https://file-rpc.example.com"
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "local-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "https://env-rpc.example.com", cfg.Solana.RPCURL)
	assert.Equal(t, VERIFICATION_RPC, cfg.Tips.Verification)
}
