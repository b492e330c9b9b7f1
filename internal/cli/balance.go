package cli

import (
	"github.com/spf13/cobra"

	"soltoken/internal/tokeninfo"
	stsolana "soltoken/pkg/solana"
)

const balanceUsage = "soltoken balance --mint <mint-address> [--wallet <wallet-address>]"

func (a *App) newBalanceCommand() *cobra.Command {
	var mint, wallet string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the token balance of the wallet or another address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mintAddress := a.mintAddress(mint)
			if mintAddress == "" {
				return a.inputError(balanceUsage, "Token mint address not provided")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			a.println("Checking token balance...")
			a.printf("Token: %s\n", mintAddress)
			if wallet != "" {
				a.printf("Wallet: %s\n", wallet)
			} else {
				a.println("Wallet: Owner wallet (from .env file)")
			}

			balance := svc.CheckBalance(cmd.Context(), mintAddress, wallet)
			a.printf("\nToken Balance: %d\n", balance)

			info, err := tokeninfo.FindForMint(a.workDir, mintAddress)
			if err != nil {
				a.log.WithError(err).Debug("No token info for mint")
				return nil
			}
			actual := stsolana.FromBaseUnits(balance, info.DecimalsOrDefault())
			a.printf("Actual Balance: %s %s\n", actual.String(), info.Symbol)
			return nil
		},
	}

	cmd.Flags().StringVar(&mint, "mint", "", "token mint address (default TOKEN_MINT_ADDRESS)")
	cmd.Flags().StringVar(&wallet, "wallet", "", "wallet to inspect (default the owner wallet)")
	return cmd
}
