// Package cli implements the soltoken command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"soltoken/internal/events"
	"soltoken/internal/token"
	"soltoken/pkg/config"
)

// App holds the state shared by every subcommand of one invocation
type App struct {
	out      io.Writer
	log      *logrus.Logger
	envFile  string
	workDir  string
	settings *config.Settings
	closers  []func() error
}

func newApp(out io.Writer) *App {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &App{out: out, log: logger}
}

// NewRootCommand builds the soltoken command tree writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	app := newApp(out)

	root := &cobra.Command{
		Use:           "soltoken",
		Short:         "Create, mint, transfer and inspect an SPL token",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStatus(cmd)
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&app.workDir, "dir", ".", "working directory for token-info files and .env")
	root.PersistentFlags().StringVar(&app.envFile, "env-file", "", "dotenv file to load and update (default <dir>/.env)")

	root.AddCommand(
		app.newMintCommand(),
		app.newTransferCommand(),
		app.newBalanceCommand(),
		app.newDisableMintingCommand(),
		app.newAirdropCommand(),
		app.newStatusCommand(),
		app.newKeygenCommand(),
		app.newMigrateCommand(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("soltoken failed")
		stop()
		os.Exit(1)
	}
}

func (a *App) load(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	if a.envFile == "" {
		a.envFile = filepath.Join(a.workDir, ".env")
	}

	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	a.settings = settings

	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		a.log.SetLevel(level)
	} else {
		a.log.Warnf("Unknown LOG_LEVEL %q, using info", settings.LogLevel)
	}
	return nil
}

// inWorkDir resolves a relative path against --dir
func (a *App) inWorkDir(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.workDir, path)
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Debug("close failed")
		}
	}
	a.closers = nil
}

// recorder publishes to RabbitMQ when configured. A broker that cannot be
// reached only disables publishing.
func (a *App) recorder() events.Recorder {
	if !a.settings.RabbitMQEnabled() {
		return events.Nop{}
	}
	if err := config.InitRabbitMQ(1); err != nil {
		a.log.WithError(err).Warn("Event publishing disabled")
		return events.Nop{}
	}
	a.closers = append(a.closers, config.CloseRabbitMQ)

	pub, err := config.NewPublisher()
	if err != nil {
		a.log.WithError(err).Warn("Event publishing disabled")
		return events.Nop{}
	}
	a.closers = append(a.closers, pub.Close)
	return events.NewQueueRecorder(pub)
}

func (a *App) service() (*token.Service, error) {
	return token.NewFromSettings(a.settings, a.log, token.WithRecorder(a.recorder()))
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// inputError reports invalid input with the usage line. The command still
// succeeds.
func (a *App) inputError(usage, format string, args ...interface{}) error {
	a.printf("Error: "+format+"\n", args...)
	a.println("Usage:", usage)
	return nil
}

// mintAddress returns the --mint flag or TOKEN_MINT_ADDRESS
func (a *App) mintAddress(flag string) string {
	if flag != "" {
		return flag
	}
	return a.settings.MintAddress
}
