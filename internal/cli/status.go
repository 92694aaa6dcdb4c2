// internal/cli/status.go
package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/skellert/papyr/internal/store"
)

// statusCmd reports the index size and effective configuration.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index size and the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		vs, err := store.Open(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer vs.Close()

		count, err := vs.Count(context.Background())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("Vectors stored:   %d\n", count)
		bold.Printf("Index location:   %s\n", vs.Path())
		color.White("Corpus directory: %s", cfg.DataDir)
		color.White("Extensions:       %s", strings.Join(cfg.AllowedExtensions(), ", "))
		color.White("Chunk size:       %d runes", cfg.ChunkRunes())
		color.White("Model host:       %s", cfg.BaseURL())
		color.White("Generation model: %s", cfg.Generation())
		color.White("Embedding model:  %s", cfg.Embedding())

		if cfg.Debug {
			pp.Println(cfg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
