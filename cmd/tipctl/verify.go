package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosiol/sosiol/internal/verifier"
)

func newVerifyCmd(_ *app) *cobra.Command {
	var (
		wallet    string
		message   string
		signature string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a wallet's detached signature over a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verifier.VerifyWalletSignature(wallet, message, signature) {
				return errors.New("signature is not valid for this wallet and message")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}

	cmd.Flags().StringVarP(&wallet, "wallet", "w", "", "Wallet address")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Signed message")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "Signature (base58 or base64)")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}
