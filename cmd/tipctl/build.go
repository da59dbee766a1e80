package main

import (
	"github.com/spf13/cobra"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/blockhash"
	"github.com/sosiol/sosiol/internal/solana"
	"github.com/sosiol/sosiol/internal/solana/rpc"
	"github.com/sosiol/sosiol/internal/txbuilder"
)

type buildOutput struct {
	Transaction               string  `json:"transaction"`
	From                      string  `json:"from"`
	To                        string  `json:"to"`
	SourceTokenAccount        string  `json:"sourceTokenAccount"`
	DestinationTokenAccount   string  `json:"destinationTokenAccount"`
	CreatesDestinationAccount bool    `json:"createsDestinationAccount"`
	AmountUSDC                float64 `json:"amountUsdc"`
	Amount                    uint64  `json:"amount"`
	Blockhash                 string  `json:"blockhash"`
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		from   string
		to     string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an unsigned USDC transfer for the sender's wallet to sign",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromKey, err := solana.PublicKeyFromBase58(from)
			if err != nil {
				return err
			}
			toKey, err := solana.PublicKeyFromBase58(to)
			if err != nil {
				return err
			}
			mint, err := a.mintKey()
			if err != nil {
				return err
			}

			httpClient := a.httpClient()
			provider := blockhash.NewProvider(rpc.NewEndpointFetcher(httpClient), blockhash.Config{
				Endpoints:       a.cfg.Solana.Endpoints(),
				TTL:             a.cfg.Solana.BlockhashTTL,
				RetryPause:      a.cfg.Solana.RetryPause,
				FinalRetryPause: a.cfg.Solana.FinalRetryPause,
				Sandbox:         a.cfg.Solana.Sandbox,
			}, adapter.NewClock())

			builder := txbuilder.NewBuilder(a.rpcClient(), provider, mint)
			result, err := builder.BuildTransfer(cmd.Context(), fromKey, toKey, amount)
			if err != nil {
				return err
			}

			encoded, err := result.Transaction.ToBase64()
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), buildOutput{
				Transaction:               encoded,
				From:                      fromKey.String(),
				To:                        toKey.String(),
				SourceTokenAccount:        result.SourceTokenAccount.String(),
				DestinationTokenAccount:   result.DestinationTokenAccount.String(),
				CreatesDestinationAccount: result.CreatesDestinationAccount,
				AmountUSDC:                solana.BaseUnitsToUSDC(result.Amount),
				Amount:                    result.Amount,
				Blockhash:                 result.Blockhash,
			})
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Sender wallet address (fee payer)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Recipient wallet address")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount in USDC")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
