package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the iam_* schema (uses the DB_* settings)",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", func(cmd *cobra.Command, db *sql.DB) error {
			return persistence.MigrateUp(cmd.Context(), db)
		}),
		migrateSubcommand("down", "Roll back the latest migration", func(cmd *cobra.Command, db *sql.DB) error {
			return persistence.MigrateDown(cmd.Context(), db)
		}),
		migrateSubcommand("status", "Show applied and pending migrations", func(cmd *cobra.Command, db *sql.DB) error {
			return persistence.MigrationStatus(cmd.Context(), db, cmd.OutOrStdout())
		}),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(*cobra.Command, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			defer conf.Unload()
			db, err := persistence.OpenDB(conf.Database.Opts)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.PingContext(cmd.Context()); err != nil {
				return err
			}
			return run(cmd, db)
		},
	}
}

