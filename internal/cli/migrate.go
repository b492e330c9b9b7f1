package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soltoken/pkg/config"
)

func (a *App) newMigrateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the token registry migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inWorkDir(dir)
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("migrations directory: %w", err)
			}
			if !a.settings.DatabaseEnabled() {
				return errors.New("DB_HOST is not set")
			}
			if err := config.InitDB(); err != nil {
				return err
			}
			a.closers = append(a.closers, config.CloseDB)

			if args[0] == "down" {
				return config.RollbackMigration(path)
			}
			return config.ExecuteMigrations(path)
		},
	}

	cmd.Flags().StringVar(&dir, "path", config.DefaultMigrationsDir, "migrations directory, relative to --dir")
	return cmd
}
