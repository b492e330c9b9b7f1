package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const disableUsage = "soltoken disable-minting --mint <mint-address> --confirm yes"

func (a *App) newDisableMintingCommand() *cobra.Command {
	var mint, confirm string

	cmd := &cobra.Command{
		Use:   "disable-minting",
		Short: "Permanently revoke the mint authority of a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mintAddress := a.mintAddress(mint)
			if mintAddress == "" {
				return a.inputError(disableUsage, "Token mint address not provided")
			}

			if confirm != "yes" {
				a.println()
				a.println("WARNING: This operation is irreversible!")
				a.println("Once minting is disabled, no more tokens can ever be created.")
				a.println("To confirm, re-run this command with the --confirm yes flag.")
				a.println("Usage:", disableUsage)
				return nil
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			a.println("Disabling minting for token:", mintAddress)
			a.println("This operation is irreversible.")

			sig, err := svc.DisableMinting(cmd.Context(), mintAddress)
			if err != nil {
				return fmt.Errorf("error disabling minting: %w", err)
			}

			a.println()
			a.println("Minting disabled successfully!")
			a.println("Transaction signature:", sig)
			a.println()
			a.println("No additional tokens can be minted for this token.")
			return nil
		},
	}

	cmd.Flags().StringVar(&mint, "mint", "", "token mint address (default TOKEN_MINT_ADDRESS)")
	cmd.Flags().StringVar(&confirm, "confirm", "", `must be "yes" to proceed`)
	return cmd
}
