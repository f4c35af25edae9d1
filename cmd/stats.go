package cmd

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/knudmoeller/solar-system-rdf/internal/config"
	"github.com/knudmoeller/solar-system-rdf/internal/graphstore"
	"github.com/knudmoeller/solar-system-rdf/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counts from the persisted graph store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := observability.GetLogger()
		cfg := config.Get()

		if cfg.Postgres.URL == "" {
			return fmt.Errorf("postgres.url is not configured (hint: check SOLAR_POSTGRES_URL)")
		}

		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		store, err := graphstore.New(ctx, pool, logger)
		if err != nil {
			return err
		}

		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("runs:     %d\n", stats.Runs)
		fmt.Printf("subjects: %d\n", stats.Subjects)
		fmt.Printf("triples:  %d\n", stats.Triples)
		return nil
	},
}
