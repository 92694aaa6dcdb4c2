// internal/cli/ask.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skellert/papyr/internal/ollama"
	"github.com/skellert/papyr/internal/rag"
	"github.com/skellert/papyr/internal/store"
)

var askTopK int

// askCmd answers a single question and streams the answer to stdout.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question using the indexed corpus, streaming the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		question := strings.TrimSpace(strings.Join(args, " "))

		vs, err := store.Open(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer vs.Close()

		topK := askTopK
		if !cmd.Flags().Changed("top-k") {
			topK = cfg.RetrievalTopK()
		}

		client := ollama.New(cfg)
		engine := &rag.Engine{Store: vs, Embedder: client, Generator: client}

		// Every produced value is the full answer so far; print only the
		// suffix beyond what is already on screen. A value that is not an
		// extension of the previous one (a mid-stream error message) goes on
		// its own line.
		var last string
		for answer := range engine.Answer(context.Background(), question, topK) {
			if suffix, ok := strings.CutPrefix(answer, last); ok {
				fmt.Print(suffix)
			} else {
				fmt.Print("\n" + answer)
			}
			last = answer
		}
		fmt.Println()
		return nil
	},
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 3, "number of chunks to retrieve as context")
	rootCmd.AddCommand(askCmd)
}
