package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"soltoken/internal/envfile"
	"soltoken/internal/token"
	"soltoken/internal/tokeninfo"
	"soltoken/pkg/config"
)

const mintEnvKey = "TOKEN_MINT_ADDRESS"

func (a *App) newMintCommand() *cobra.Command {
	var (
		name     string
		symbol   string
		decimals uint8
		supply   uint64
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Create a new token and mint the initial supply to the wallet",
		Long: `Create a new SPL token and mint the initial supply to the wallet.

Token parameters come from TOKEN_NAME, TOKEN_SYMBOL, TOKEN_DECIMALS and
TOKEN_SUPPLY unless overridden by flags. The token details are saved to
token-info-<symbol>.json and TOKEN_MINT_ADDRESS is written to the .env file
when it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := token.MintRequest{
				Name:     a.settings.TokenName,
				Symbol:   a.settings.TokenSymbol,
				Decimals: a.settings.TokenDecimals,
				Amount:   a.settings.TokenSupply,
			}
			if cmd.Flags().Changed("name") && name != "" {
				req.Name = name
			}
			if cmd.Flags().Changed("symbol") && symbol != "" {
				req.Symbol = symbol
			}
			if cmd.Flags().Changed("decimals") {
				req.Decimals = decimals
				if req.Decimals == 0 {
					req.Decimals = config.DefaultTokenDecimals
				}
			}
			if cmd.Flags().Changed("supply") {
				req.Amount = supply
				if req.Amount == 0 {
					req.Amount = config.DefaultTokenSupply
				}
			}
			return a.runMint(cmd, req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "token name (default TOKEN_NAME)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol (default TOKEN_SYMBOL)")
	cmd.Flags().Uint8Var(&decimals, "decimals", 0, "token decimals (default TOKEN_DECIMALS)")
	cmd.Flags().Uint64Var(&supply, "supply", 0, "initial supply in whole tokens (default TOKEN_SUPPLY)")
	return cmd
}

func (a *App) runMint(cmd *cobra.Command, req token.MintRequest) error {
	a.println("Starting token minting process...")
	a.println("Token Details:")
	a.printf("- Name: %s\n", req.Name)
	a.printf("- Symbol: %s\n", req.Symbol)
	a.printf("- Decimals: %d\n", req.Decimals)
	a.printf("- Total Supply: %d\n", req.Amount)

	svc, err := a.service()
	if err != nil {
		return err
	}

	res, err := svc.CreateAndMint(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("error minting token: %w", err)
	}
	mintAddress := res.Mint.String()

	decimals := req.Decimals
	path, err := tokeninfo.Save(a.workDir, &tokeninfo.Descriptor{
		Name:         req.Name,
		Symbol:       req.Symbol,
		Decimals:     &decimals,
		TotalSupply:  req.Amount,
		MintAddress:  mintAddress,
		TokenAccount: res.TokenAccount.String(),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	updated, err := envfile.UpdateFile(a.envFile, mintEnvKey, mintAddress)
	if err != nil {
		return err
	}
	if updated {
		a.println(".env file updated with token mint address")
	}

	a.println()
	a.println("Token created successfully!")
	a.println("Token info saved to:", path)
	a.println()
	a.println("Token Mint Address:", mintAddress)
	a.println("Use this address for sending tokens and checking balances.")
	return nil
}
