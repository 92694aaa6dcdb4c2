// internal/rag/chunker.go
// Package rag implements the indexing and question-answering pipelines:
// chunking, incremental index construction, retrieval, and prompt assembly.
package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Chunk is the atomic unit of embedding and retrieval. ID is the chunk's
// position in the global corpus chunk list, stringified, and is stable across
// runs for the same file set and chunk size.
type Chunk struct {
	ID   string
	Text string
}

// ChunkText splits text into contiguous, non-overlapping slices of at most
// size runes, preserving order. The input is trimmed of surrounding
// whitespace first; an empty result yields no chunks.
func ChunkText(text string, size int) []string {
	if size <= 0 {
		return nil
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

// LoadCorpusChunks chunks every corpus file with an allowed extension,
// visiting files in lexicographic name order, and assigns global positional
// ids across all documents.
func LoadCorpusChunks(dir string, exts []string, size int) ([]Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory %s: %w", dir, err)
	}

	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var chunks []Chunk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if len(allowed) > 0 {
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if _, ok := allowed[ext]; !ok {
				continue
			}
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read corpus file %s: %w", entry.Name(), err)
		}
		for _, text := range ChunkText(string(raw), size) {
			chunks = append(chunks, Chunk{
				ID:   strconv.Itoa(len(chunks)),
				Text: text,
			})
		}
	}
	return chunks, nil
}
