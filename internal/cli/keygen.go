package cli

import (
	"github.com/spf13/cobra"

	stsolana "soltoken/pkg/solana"
)

func (a *App) newKeygenCommand() *cobra.Command {
	var out string
	var force bool

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new wallet keypair file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inWorkDir(out)

			km := stsolana.NewKeyManager()
			account, err := km.GenerateKeyPair()
			if err != nil {
				return err
			}
			if err := km.SaveKeypairFile(account, path, force); err != nil {
				return err
			}

			a.println("Keypair written to:", path)
			a.println("Public key:", account.PublicKey.ToBase58())
			a.println("Set WALLET_PRIVATE_KEY to this path in your .env file to use it.")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "wallet.json", "keypair file to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
