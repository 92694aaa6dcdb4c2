// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"dataDir":"texts","indexDir":"index"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.BaseURL() != "http://localhost:11434" {
		t.Errorf("BaseURL = %q", cfg.BaseURL())
	}
	if cfg.Generation() != "mistral:latest" {
		t.Errorf("Generation = %q", cfg.Generation())
	}
	if cfg.Embedding() != "nomic-embed-text" {
		t.Errorf("Embedding = %q", cfg.Embedding())
	}
	if cfg.ChunkRunes() != 5000 {
		t.Errorf("ChunkRunes = %d", cfg.ChunkRunes())
	}
	if cfg.RetrievalTopK() != 3 {
		t.Errorf("RetrievalTopK = %d", cfg.RetrievalTopK())
	}
	if cfg.RequestTimeout() != 120*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.RequestTimeout())
	}
	if exts := cfg.AllowedExtensions(); len(exts) != 1 || exts[0] != ".txt" {
		t.Errorf("AllowedExtensions = %v", exts)
	}
	if cfg.LogFilePath() != "papyr.log" {
		t.Errorf("LogFilePath = %q", cfg.LogFilePath())
	}
}

func TestLoadExplicitValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		"ollamaUrl": "http://models.local:11434/",
		"generationModel": "llama3",
		"embeddingModel": "all-minilm",
		"dataDir": "papers",
		"indexDir": "db",
		"chunkSize": 800,
		"topK": 5,
		"timeout": 30,
		"extensions": ["txt", ".MD"],
		"logFile": "logs/papyr.log",
		"debug": true
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.BaseURL() != "http://models.local:11434" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.BaseURL())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.RequestTimeout())
	}
	exts := cfg.AllowedExtensions()
	if len(exts) != 2 || exts[0] != ".txt" || exts[1] != ".md" {
		t.Errorf("AllowedExtensions = %v", exts)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"missing dataDir", `{"indexDir":"index"}`},
		{"chunkSize zero", `{"dataDir":"texts","indexDir":"index","chunkSize":0}`},
		{"unknown key", `{"dataDir":"texts","indexDir":"index","chunks":12}`},
		{"wrong type", `{"dataDir":"texts","indexDir":"index","topK":"three"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error for an explicit path, got %v", err)
	}
}
