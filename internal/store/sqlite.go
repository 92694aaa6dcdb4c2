// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"
)

const dbFileName = "papyr.db"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS vectors (
	id        TEXT PRIMARY KEY,
	document  TEXT NOT NULL,
	embedding BLOB NOT NULL
)`

// SQLiteStore is a VectorStore backed by a single sqlite database file.
// Similarity search is a full scan scored by cosine similarity; corpora in
// the tens of thousands of chunks stay well under interactive latency.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens the vector index inside dir.
func Open(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create index directory: %v", ErrIndex, err)
	}
	path := filepath.Join(dir, dbFileName)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIndex, path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrIndex, err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vectors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrIndex, err)
	}
	return n, nil
}

// ExistingIDs returns a snapshot of every stored id.
func (s *SQLiteStore) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM vectors`)
	if err != nil {
		return nil, fmt.Errorf("%w: list ids: %v", ErrIndex, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan id: %v", ErrIndex, err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list ids: %v", ErrIndex, err)
	}
	return ids, nil
}

// Upsert stores or overwrites one entry.
func (s *SQLiteStore) Upsert(ctx context.Context, id, document string, embedding []float64) error {
	if len(embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for id %s", ErrIndex, id)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vectors (id, document, embedding) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, embedding = excluded.embedding`,
		id, document, encodeVector(embedding))
	if err != nil {
		return fmt.Errorf("%w: upsert id %s: %v", ErrIndex, id, err)
	}
	return nil
}

// Query scans all entries and returns up to topK by descending cosine
// similarity. Entries whose dimension differs from the query vector are
// skipped rather than scored.
func (s *SQLiteStore) Query(ctx context.Context, embedding []float64, topK int) ([]Result, error) {
	if topK <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, document, embedding FROM vectors`)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrIndex, err)
	}
	defer rows.Close()

	queryNorm := vectorNorm(embedding)
	var results []Result
	for rows.Next() {
		var (
			id, document string
			blob         []byte
		)
		if err := rows.Scan(&id, &document, &blob); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrIndex, err)
		}
		stored := decodeVector(blob)
		if len(stored) != len(embedding) {
			continue
		}
		results = append(results, Result{
			ID:       id,
			Document: document,
			Score:    cosineSimilarity(embedding, stored, queryNorm),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrIndex, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeVector packs a vector as little-endian float64 words.
func encodeVector(v []float64) []byte {
	buf := make([]byte, 8*len(v))
	for i, val := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(val))
	}
	return buf
}

func decodeVector(buf []byte) []float64 {
	v := make([]float64, len(buf)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return v
}

func cosineSimilarity(a, b []float64, normA float64) float64 {
	if normA == 0 {
		return 0
	}
	normB := vectorNorm(b)
	if normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}
