package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/teamops_backend/migrations"
	"github.com/SscSPs/teamops_backend/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run Migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(database.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(database.MigrateDown)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := database.MigrationVersion(cfg.DatabaseURL, migrations.FS, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", status.Version, status.Dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func runMigrations(direction database.MigrationDirection) error {
	status, err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, direction, logger)
	if err != nil {
		return err
	}
	if !status.Changed {
		logger.Info("No migrations to apply.", slog.Uint64("version", uint64(status.Version)))
		return nil
	}
	logger.Info("Migrations applied",
		slog.String("direction", string(direction)),
		slog.Uint64("version", uint64(status.Version)),
		slog.Bool("dirty", status.Dirty),
	)
	return nil
}
