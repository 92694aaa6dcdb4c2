// internal/cli/ui.go
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/skellert/papyr/internal/ollama"
	"github.com/skellert/papyr/internal/rag"
	"github.com/skellert/papyr/internal/store"
	"github.com/skellert/papyr/internal/tui"
)

// uiCmd starts the interactive ask interface.
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive interface: ask questions and rebuild the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		vs, err := store.Open(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer vs.Close()

		client := ollama.New(cfg)
		engine := &rag.Engine{Store: vs, Embedder: client, Generator: client}

		answer := func(ctx context.Context, question string, topK int) <-chan string {
			return engine.Answer(ctx, question, topK)
		}
		build := func(ctx context.Context, onProgress func(current, total int, label string)) (string, error) {
			indexer := &rag.Indexer{Store: vs, Embedder: client, OnProgress: onProgress}
			return indexer.Build(ctx, cfg.DataDir, cfg.AllowedExtensions(), cfg.ChunkRunes())
		}

		return tui.Run(context.Background(), answer, build)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
