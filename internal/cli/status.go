package cli

import (
	"time"

	"github.com/spf13/cobra"

	"soltoken/internal/token"
	stsolana "soltoken/pkg/solana"
)

var errNoWallet = token.ErrNoWallet

const healthTimeout = 5 * time.Second

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the network, wallet and available commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *App) runStatus(cmd *cobra.Command) error {
	wallet, err := a.loadWallet()
	if err != nil {
		return err
	}

	mode := "DISABLED"
	if a.settings.SimulationMode {
		mode = "ENABLED"
	}

	a.println()
	a.println("Solana Token Manager")
	a.println("====================")
	a.printf("Network: %s\n", a.settings.Network)
	a.printf("Simulation Mode: %s\n", mode)
	a.printf("Wallet Address: %s\n", wallet.PublicKey())
	if a.settings.MintAddress != "" {
		a.printf("Current Token: %s\n", a.settings.MintAddress)
	}

	a.println()
	a.println("Available Commands:")
	a.println("------------------")
	a.println("- soltoken airdrop: Request SOL from the cluster faucet")
	a.println("- soltoken mint: Create and mint new tokens")
	a.println("- soltoken transfer: Transfer tokens between wallets")
	a.println("- soltoken balance: Check token balances")
	a.println("- soltoken disable-minting: Disable further token minting")
	a.println("- soltoken keygen: Generate a new wallet keypair")

	if a.settings.SimulationMode {
		a.println()
		a.println("NOTE: Running in simulation mode. No real blockchain transactions will be made.")
		a.println("To use real transactions, set SIMULATION_MODE=false in your .env file.")
		return nil
	}

	client, endpoint, err := stsolana.NewRPCClient(a.settings.Network, a.settings.RPCURL)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	for _, res := range stsolana.CheckRPCListAsync(ctx, []string{endpoint}, healthTimeout) {
		if res.OK {
			a.printf("\nRPC %s: healthy (%s)\n", res.URL, res.Latency.Round(time.Millisecond))
		} else {
			a.printf("\nRPC %s: unhealthy (%s)\n", res.URL, res.Error)
		}
	}

	balance, err := stsolana.GetSolBalance(ctx, client, wallet.PublicKey())
	if err != nil {
		return err
	}
	a.printf("Wallet Balance: %s SOL\n", stsolana.LamportsToSol(balance))
	if balance == 0 {
		a.println()
		a.println("You need SOL to perform real transactions. Run: soltoken airdrop")
	}
	return nil
}
