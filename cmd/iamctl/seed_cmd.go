package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/iam-console/modules/iam/infrastructure/persistence"
	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/configuration"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in fixtures into the iam_* tables in one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			defer conf.Unload()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			var results []persistence.SeedResult
			err = composables.InTx(ctx, pool, func(ctx context.Context) error {
				var err error
				results, err = persistence.Seed(ctx, composables.UseTx(ctx, pool))
				return err
			})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d inserted\n", r.Resource, r.Inserted)
			}
			return nil
		},
	}
}
