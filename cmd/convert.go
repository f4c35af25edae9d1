package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/internal/config"
	"github.com/knudmoeller/solar-system-rdf/internal/observability"
	"github.com/knudmoeller/solar-system-rdf/internal/wikidata"
)

var convertCmd = newConvertCmd(NewComponentFactory())

func newConvertCmd(factory ComponentFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Build the knowledge graph and write it as Turtle",
		Long: `Reads the materialized Wikidata query results for planets and moons,
builds an RDF knowledge graph of the solar system (resolving image licenses
through the Wikimedia Commons API), and serializes it as Turtle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := config.Get()

			runID := uuid.NewString()
			logger.Info("Starting conversion",
				zap.String("run_id", runID),
				zap.String("source_dir", cfg.Dataset.SourceDir),
				zap.String("output", cfg.Dataset.Output))

			components, err := factory.Create(ctx, cfg)
			if err != nil {
				return err
			}
			defer components.Shutdown()

			planets, err := wikidata.LoadRecords(filepath.Join(cfg.Dataset.SourceDir, wikidata.PlanetsFile))
			if err != nil {
				return err
			}
			moons, err := wikidata.LoadRecords(filepath.Join(cfg.Dataset.SourceDir, wikidata.MoonsFile))
			if err != nil {
				return err
			}
			logger.Info("Loaded query results",
				zap.Int("planets", len(planets)),
				zap.Int("moons", len(moons)))

			summary, err := components.Builder.Convert(ctx, planets, moons)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			summary.RunID = runID

			out, err := os.Create(cfg.Dataset.Output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer out.Close()
			if err := components.Builder.Graph().Serialize(out); err != nil {
				return fmt.Errorf("serializing graph: %w", err)
			}

			logger.Info("Conversion finished",
				zap.String("run_id", summary.RunID),
				zap.Int("planets", summary.Planets),
				zap.Int("moons", summary.Moons),
				zap.Int("images_resolved", summary.ImagesResolved),
				zap.Int("triples", summary.Triples))

			// Persistence is best effort once the Turtle output is on disk.
			if components.GraphStore != nil {
				if err := components.GraphStore.SaveGraph(ctx, runID, components.Builder.Graph()); err != nil {
					logger.Error("Failed to persist graph", zap.Error(err))
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("source", "", "directory containing the query result files")
	cmd.Flags().String("output", "", "path of the Turtle output file")
	cmd.Flags().String("base", "", "base URL for minted identifiers")
	_ = viper.BindPFlag("dataset.source_dir", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("dataset.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("dataset.base_url", cmd.Flags().Lookup("base"))

	return cmd
}
