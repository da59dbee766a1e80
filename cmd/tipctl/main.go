package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/config"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
)

// app holds state shared by every subcommand
type app struct {
	configFile string
	envPath    string
	rpcURL     string
	mint       string
	sandbox    bool

	cfg *config.TipCtlConfig
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "tipctl",
		Short:        "Build and inspect Sosiol USDC tip transactions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&a.envPath, "env", "config/", "Path to environment files")
	root.PersistentFlags().StringVarP(&a.rpcURL, "rpc-url", "u", "", "Solana RPC endpoint (overrides solana.rpc_url)")
	root.PersistentFlags().StringVar(&a.mint, "mint", "", "Token mint (overrides solana.usdc_mint)")
	root.PersistentFlags().BoolVar(&a.sandbox, "sandbox", false, "Allow a placeholder blockhash when every endpoint fails")

	root.AddCommand(
		newBuildCmd(a),
		newATACmd(a),
		newBalanceCmd(a),
		newVerifyCmd(a),
	)

	return root
}

// load reads configuration and applies flag overrides
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadTipCtlConfig(a.configFile, a.envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.rpcURL != "" {
		cfg.Solana.RPCURL = a.rpcURL
	}
	if a.mint != "" {
		cfg.Solana.USDCMint = a.mint
	}
	if cmd.Flags().Changed("sandbox") {
		cfg.Solana.Sandbox = a.sandbox
	}
	a.cfg = cfg

	// Logs go to stderr so stdout stays machine-readable
	if err := logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "tipctl",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func (a *app) mintKey() (solana.PublicKey, error) {
	mint, err := solana.PublicKeyFromBase58(a.cfg.Solana.USDCMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid mint: %w", err)
	}
	return mint, nil
}

func (a *app) httpClient() adapter.HTTPClient {
	timeout := a.cfg.Solana.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return adapter.NewHTTPClient(timeout)
}

// rpcClient returns a client for the primary endpoint. Rate limited lookups are retried.
func (a *app) rpcClient() *rpc.Client {
	return rpc.NewClient(a.httpClient(), a.cfg.Solana.RPCURL, rpc.WithRetry())
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
