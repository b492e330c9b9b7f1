package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const transferUsage = "soltoken transfer --mint <mint-address> --to <recipient-address> --amount <amount>"

func (a *App) newTransferCommand() *cobra.Command {
	var mint, to, amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer tokens from the wallet to another address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mintAddress := a.mintAddress(mint)
			if mintAddress == "" {
				return a.inputError(transferUsage, "Token mint address not provided.")
			}
			if to == "" {
				return a.inputError(transferUsage, "Recipient address not provided.")
			}
			if amount == "" {
				return a.inputError(transferUsage, "Amount not provided.")
			}
			value, err := strconv.ParseUint(amount, 10, 64)
			if err != nil || value == 0 {
				a.println("Error: Invalid amount. Must be a positive number.")
				return nil
			}
			return a.runTransfer(cmd, mintAddress, to, value)
		},
	}

	cmd.Flags().StringVar(&mint, "mint", "", "token mint address (default TOKEN_MINT_ADDRESS)")
	cmd.Flags().StringVar(&to, "to", "", "recipient wallet address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in base units")
	return cmd
}

func (a *App) runTransfer(cmd *cobra.Command, mint, to string, amount uint64) error {
	svc, err := a.service()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a.println("Checking balance before transfer...")
	before := svc.CheckBalance(ctx, mint, "")
	a.printf("Current balance: %d\n", before)

	if before < amount {
		a.printf("Error: Insufficient token balance. Available: %d, Required: %d\n", before, amount)
		return nil
	}

	a.printf("Transferring %d tokens to %s...\n", amount, to)
	sig, err := svc.Transfer(ctx, mint, to, amount)
	if err != nil {
		return fmt.Errorf("error transferring tokens: %w", err)
	}

	after := svc.CheckBalance(ctx, mint, "")

	a.println()
	a.println("Transfer complete!")
	a.printf("Transaction signature: %s\n", sig)
	a.printf("New balance: %d\n", after)
	return nil
}
