package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CharukaVithana/ServeXa/internal/app"
	"github.com/CharukaVithana/ServeXa/internal/config"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index <file>",
	Short: "Index a knowledge corpus file into the vector store",
	Long: `Index chunks the given text file, embeds each chunk, and stores the
embeddings in PostgreSQL. Re-indexing a file replaces its previous chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "reindex even when the store already has documents")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if err := checkRequiredEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// Bootstrap indexing during Setup is skipped; this command indexes
	// explicitly.
	cfg.KnowledgePath = ""

	ctx := context.Background()
	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	if !indexForce {
		count, countErr := a.Knowledge.Count(ctx, "")
		if countErr != nil {
			return fmt.Errorf("checking existing documents: %w", countErr)
		}
		if count > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Store already holds %d documents; use --force to reindex\n", count)
			return nil
		}
	}

	result, err := a.Indexer.IndexFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("indexing %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s: %d chunks added, %d stale chunks removed (%s)\n",
		result.Source, result.ChunksAdded, result.ChunksRemoved, result.Duration.Round(time.Millisecond))
	return nil
}
