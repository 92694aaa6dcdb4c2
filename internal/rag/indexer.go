// internal/rag/indexer.go
package rag

import (
	"context"
	"fmt"

	"github.com/skellert/papyr/internal/logging"
	"github.com/skellert/papyr/internal/store"
)

// Embedder turns a text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ProgressFunc receives incremental build progress: the number of chunks
// handled so far, the total, and a human-readable label.
type ProgressFunc func(current, total int, label string)

// Indexer builds the vector index incrementally. Ids already present in the
// store are skipped; a chunk whose content changed under an existing id is
// never re-embedded. Re-embedding requires deleting the index directory.
type Indexer struct {
	Store      store.VectorStore
	Embedder   Embedder
	OnProgress ProgressFunc
}

// Build chunks the corpus and embeds every chunk not yet in the store,
// sequentially and in id order. It returns a human-readable status on
// success ("No documents found..." counts as success) and aborts on the
// first embedding or store error, leaving the already-written prefix
// committed.
func (ix *Indexer) Build(ctx context.Context, dir string, exts []string, chunkSize int) (string, error) {
	chunks, err := LoadCorpusChunks(dir, exts, chunkSize)
	if err != nil {
		return "", err
	}
	total := len(chunks)
	if total == 0 {
		return fmt.Sprintf("No documents found in %s.", dir), nil
	}

	existing, err := ix.Store.ExistingIDs(ctx)
	if err != nil {
		return "", err
	}

	for idx, chunk := range chunks {
		if _, ok := existing[chunk.ID]; ok {
			ix.progress(idx+1, total, fmt.Sprintf("Skipping %d/%d (exists)", idx+1, total))
			continue
		}
		embedding, err := ix.Embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return "", fmt.Errorf("get embedding for chunk %s: %w", chunk.ID, err)
		}
		if err := ix.Store.Upsert(ctx, chunk.ID, chunk.Text, embedding); err != nil {
			return "", err
		}
		ix.progress(idx+1, total, fmt.Sprintf("Embedded %d/%d", idx+1, total))
	}

	count, err := ix.Store.Count(ctx)
	if err != nil {
		return "", err
	}
	logging.LogEvent("index build complete: %d chunks scanned, %d total vectors", total, count)
	return fmt.Sprintf("Index built/updated. %d total vectors stored.", count), nil
}

func (ix *Indexer) progress(current, total int, label string) {
	if ix.OnProgress != nil {
		ix.OnProgress(current, total, label)
	}
}
