// migrate applies or rolls back the embedded SQL migrations: go run ./cmd/migrate up|down.
package main

import (
	"errors"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"account-auth/internal/config"
	"account-auth/internal/db/migrate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Run account-auth database migrations",
		SilenceUsage: true,
	}
	cmd.AddCommand(newDirectionCmd(migrate.Up, "Apply all pending migrations"))
	cmd.AddCommand(newDirectionCmd(migrate.Down, "Roll back all migrations"))
	return cmd
}

func newDirectionCmd(direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   direction,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, direction)
		},
	}
}

func runMigrate(cmd *cobra.Command, direction string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load config").Wrap(err)
	}
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	cmd.Printf("Running migrations (%s)...\n", direction)
	if err := migrate.Run(cfg.DatabaseURL, direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			cmd.Println("No change.")
			return nil
		}
		return err
	}
	cmd.Println("Migrations completed successfully")
	return nil
}
