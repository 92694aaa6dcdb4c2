// internal/cli/index.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skellert/papyr/internal/ollama"
	"github.com/skellert/papyr/internal/rag"
	"github.com/skellert/papyr/internal/store"
)

// indexCmd builds or updates the persistent vector index from the corpus.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or update the vector index from the corpus directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		vs, err := store.Open(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer vs.Close()

		skipLine := color.New(color.FgYellow)
		embedLine := color.New(color.FgGreen)

		indexer := &rag.Indexer{
			Store:    vs,
			Embedder: ollama.New(cfg),
			OnProgress: func(current, total int, label string) {
				line := skipLine
				if !strings.Contains(label, "exists") {
					line = embedLine
				}
				line.Printf("[%d/%d] %s\n", current, total, label)
			},
		}

		status, err := indexer.Build(context.Background(), cfg.DataDir, cfg.AllowedExtensions(), cfg.ChunkRunes())
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
