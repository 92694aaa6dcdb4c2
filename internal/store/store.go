// internal/store/store.go
// Package store persists chunk embeddings and serves nearest-neighbor queries.
package store

import (
	"context"
	"errors"
)

// ErrIndex marks failures of the underlying vector index.
var ErrIndex = errors.New("vector index error")

// Result is a retrieved document with its similarity to the query vector.
type Result struct {
	ID       string
	Document string
	Score    float64
}

// VectorStore is the persistent index of (id, document, embedding) entries.
// Implementations are constructed once at startup and passed by reference;
// single-process, non-concurrent access is assumed.
type VectorStore interface {
	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
	// ExistingIDs returns a snapshot of every stored id.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	// Upsert stores or overwrites one entry.
	Upsert(ctx context.Context, id, document string, embedding []float64) error
	// Query returns up to topK entries ordered by descending similarity.
	Query(ctx context.Context, embedding []float64, topK int) ([]Result, error)
	// Close releases the underlying storage.
	Close() error
}
