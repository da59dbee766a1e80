package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sosiol/sosiol/internal/solana"
)

type balanceOutput struct {
	Wallet       string  `json:"wallet"`
	TokenAccount string  `json:"tokenAccount"`
	Exists       bool    `json:"exists"`
	Amount       uint64  `json:"amount"`
	AmountUSDC   float64 `json:"amountUsdc"`
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <wallet>",
		Short: "Print the wallet's USDC balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			mint, err := a.mintKey()
			if err != nil {
				return err
			}
			ata, err := solana.FindAssociatedTokenAddress(owner, mint)
			if err != nil {
				return err
			}

			out := balanceOutput{
				Wallet:       owner.String(),
				TokenAccount: ata.String(),
			}

			client := a.rpcClient()
			info, err := client.GetAccountInfo(cmd.Context(), ata.String())
			if err != nil {
				return err
			}
			if info == nil {
				// No token account yet means a zero balance
				return writeJSON(cmd.OutOrStdout(), out)
			}

			balance, err := client.GetTokenAccountBalance(cmd.Context(), ata.String())
			if err != nil {
				return err
			}
			units, err := strconv.ParseUint(balance.Amount, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid token amount %q: %w", balance.Amount, err)
			}

			out.Exists = true
			out.Amount = units
			out.AmountUSDC = solana.BaseUnitsToUSDC(units)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
