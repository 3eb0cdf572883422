// Package commands implements billctl, the admin CLI for the bill-sharing
// ledger. It talks to the store directly, not to a running server.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/app"
	"github.com/htn0810/Bill-Sharing/internal/config"
	"github.com/htn0810/Bill-Sharing/pkg/logging"
)

type cli struct {
	envFile string
	debug   bool
	cfg     *config.Config
}

// open builds the application for a single command run.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	return app.New(ctx, c.cfg)
}

// NewRootCmd returns the billctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "billctl",
		Short: "billctl - administer shared-expense bills",
		Long: `billctl manages the bill-sharing ledger from the command line.

It reads the same environment (and .env file) as the server, opens the
configured store directly and applies the same rules: completed bills are
read-only, payers must be members, and categories come from the lookup set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if c.envFile != "" {
				files = append(files, c.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if c.debug {
				logging.SetupWithLevel(slog.LevelDebug, cfg.LogFormat)
			} else {
				logging.Setup(cfg.LogLevel, cfg.LogFormat)
			}
			c.cfg = cfg
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", "", "env file to load (default .env)")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "log at debug level, overriding LOG_LEVEL")

	rootCmd.AddCommand(
		newBillsCmd(c),
		newExpensesCmd(c),
		newSummaryCmd(c),
		newCategoriesCmd(c),
		newEventsCmd(c),
		newMigrateCmd(c),
	)
	return rootCmd
}

// Execute runs billctl against stdout. This is called by main.main().
func Execute() error {
	err := NewRootCmd(os.Stdout).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
