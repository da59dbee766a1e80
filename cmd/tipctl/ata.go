package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosiol/sosiol/internal/solana"
)

func newATACmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ata <wallet>",
		Short: "Print the wallet's associated token account for the configured mint",
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

			_, err = fmt.Fprintln(cmd.OutOrStdout(), ata.String())
			return err
		},
	}
}
