package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/config"
	"github.com/htn0810/Bill-Sharing/internal/storage/sqlite"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Store != config.StoreSQLite {
				return errors.New("migrate only applies to the sqlite store")
			}
			if err := os.MkdirAll(filepath.Dir(c.cfg.DBPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			version, err := sqlite.Migrate(c.cfg.DBPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d (%s)\n", version, c.cfg.DBPath)
			return nil
		},
	}
}
