package cli

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"soltoken/internal/token"
	stsolana "soltoken/pkg/solana"
)

func (a *App) newAirdropCommand() *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Request SOL for the wallet from the cluster faucet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sol, err := decimal.NewFromString(amount)
			if err != nil || !sol.IsPositive() {
				a.println("Error: Invalid amount. Must be a positive number of SOL.")
				return nil
			}
			lamports, err := stsolana.SolToLamports(sol)
			if err != nil {
				return err
			}
			return a.runAirdrop(cmd, lamports)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "1", "amount of SOL to request")
	return cmd
}

func (a *App) runAirdrop(cmd *cobra.Command, lamports uint64) error {
	wallet, err := a.loadWallet()
	if err != nil {
		return err
	}
	owner := wallet.PublicKey()
	a.println("Requesting SOL airdrop for wallet:", owner)

	if a.settings.SimulationMode {
		a.println("SIMULATION_MODE is enabled: no request will be sent to the faucet.")
		a.println("Set SIMULATION_MODE=false in your .env file to request real SOL.")
		return nil
	}

	client, endpoint, err := stsolana.NewRPCClient(a.settings.Network, a.settings.RPCURL)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	balance, err := stsolana.GetSolBalance(ctx, client, owner)
	if err != nil {
		return err
	}
	a.printf("Current balance: %s SOL\n", stsolana.LamportsToSol(balance))

	a.printf("Requesting airdrop from %s...\n", endpoint)
	confirm := token.ConfirmOptionsFor(a.settings, endpoint)
	a.println("Waiting for airdrop confirmation...")
	if _, err := stsolana.RequestAirdrop(ctx, client, owner, lamports, confirm); err != nil {
		a.printf("Error with primary faucet: %v\n", err)
		a.printFaucets(owner, endpoint)
		return nil
	}

	after, err := stsolana.GetSolBalance(ctx, client, owner)
	if err != nil {
		return err
	}
	if after > balance {
		a.printf("Airdrop successful! New balance: %s SOL\n", stsolana.LamportsToSol(after))
		return nil
	}
	a.println("Airdrop may have failed. Balance did not increase.")
	a.printFaucets(owner, endpoint)
	return nil
}

func (a *App) printFaucets(owner solana.PublicKey, endpoint string) {
	a.println()
	a.println("Automated airdrop failed - please use one of these faucets:")
	a.println("----------------------------------------------------------")
	a.println("1. Official Solana Faucet:")
	a.println("   Visit: https://faucet.solana.com")
	a.println("   Enter your wallet address:", owner)
	a.println()
	a.println("2. SolFaucet:")
	a.println("   Visit: https://solfaucet.com")
	a.println("   Enter your wallet address:", owner)
	a.println()
	a.println("3. QuickNode Faucet:")
	a.println("   Visit: https://faucet.quicknode.com/solana/" + a.settings.Network)
	a.println("   Enter your wallet address:", owner)
	a.println()
	a.println("After using any of these faucets, check your balance with:")
	a.printf("solana balance %s --url %s\n", owner, endpoint)
	a.println()
	a.println("Once you have SOL, you can create your token with:")
	a.println("soltoken mint")
}

// loadWallet reads the keypair named by WALLET_PRIVATE_KEY
func (a *App) loadWallet() (solana.PrivateKey, error) {
	if a.settings.WalletPath == "" {
		return nil, errNoWallet
	}
	return stsolana.NewKeyManager().LoadKeypairFromFile(a.settings.WalletPath)
}
