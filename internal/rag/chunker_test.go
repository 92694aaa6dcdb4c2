// internal/rag/chunker_test.go
package rag

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChunkTextReconstructsInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		size int
		want int
	}{
		{"exact multiple", strings.Repeat("a", 10), 5, 2},
		{"with remainder", strings.Repeat("b", 11), 5, 3},
		{"smaller than size", "tiny", 100, 1},
		{"size one", "abc", 1, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := ChunkText(tc.text, tc.size)
			if len(chunks) != tc.want {
				t.Fatalf("chunk count = %d, want %d", len(chunks), tc.want)
			}
			if got := strings.Join(chunks, ""); got != tc.text {
				t.Errorf("concatenation does not reconstruct input: %q", got)
			}
			for i, c := range chunks {
				if len([]rune(c)) > tc.size {
					t.Errorf("chunk %d exceeds size: %d runes", i, len([]rune(c)))
				}
			}
		})
	}
}

func TestChunkTextTrimsAndHandlesEmpty(t *testing.T) {
	t.Parallel()

	if chunks := ChunkText("  \n\t  ", 10); chunks != nil {
		t.Errorf("whitespace-only input should yield no chunks, got %v", chunks)
	}
	if chunks := ChunkText("", 10); chunks != nil {
		t.Errorf("empty input should yield no chunks, got %v", chunks)
	}

	chunks := ChunkText("  padded  ", 100)
	if len(chunks) != 1 || chunks[0] != "padded" {
		t.Errorf("expected trimmed single chunk, got %v", chunks)
	}
}

func TestChunkTextCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// Four runes, multi-byte each.
	chunks := ChunkText("日本語文", 2)
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	if chunks[0] != "日本" || chunks[1] != "語文" {
		t.Errorf("unexpected rune split: %v", chunks)
	}
}

func TestChunkTextDeterministic(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("determinism ", 50)
	first := ChunkText(text, 64)
	second := ChunkText(text, 64)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadCorpusChunksGlobalOrderAndIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Written out of order on purpose; enumeration is lexicographic.
	writeCorpusFile(t, dir, "b.txt", "ccdd")
	writeCorpusFile(t, dir, "a.txt", "aabb")

	chunks, err := LoadCorpusChunks(dir, []string{".txt"}, 2)
	if err != nil {
		t.Fatalf("LoadCorpusChunks error: %v", err)
	}

	wantTexts := []string{"aa", "bb", "cc", "dd"}
	if len(chunks) != len(wantTexts) {
		t.Fatalf("chunk count = %d, want %d", len(chunks), len(wantTexts))
	}
	for i, c := range chunks {
		if c.Text != wantTexts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, c.Text, wantTexts[i])
		}
		if want := []string{"0", "1", "2", "3"}[i]; c.ID != want {
			t.Errorf("chunk %d id = %q, want %q", i, c.ID, want)
		}
	}
}

func TestLoadCorpusChunksFiltersExtensionsAndEmptyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpusFile(t, dir, "keep.txt", "content")
	writeCorpusFile(t, dir, "skip.pdf", "binaryish")
	writeCorpusFile(t, dir, "empty.txt", "   \n  ")

	chunks, err := LoadCorpusChunks(dir, []string{".txt"}, 100)
	if err != nil {
		t.Fatalf("LoadCorpusChunks error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "content" {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}
}

func TestLoadCorpusChunksMissingDir(t *testing.T) {
	t.Parallel()

	_, err := LoadCorpusChunks(filepath.Join(t.TempDir(), "absent"), []string{".txt"}, 100)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
