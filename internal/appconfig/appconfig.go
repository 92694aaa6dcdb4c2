// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout bounds every call to the model server, including a
	// stalled generation stream.
	defaultRequestTimeout = 120 * time.Second
	// defaultChunkSize is the chunk length in runes used when the config omits it.
	defaultChunkSize = 5000
	// defaultTopK is the number of chunks retrieved per question by default.
	defaultTopK = 3
)

// Config represents the top-level application configuration.
type Config struct {
	OllamaURL       string   `json:"ollamaUrl"`
	GenerationModel string   `json:"generationModel"`
	EmbeddingModel  string   `json:"embeddingModel"`
	DataDir         string   `json:"dataDir"`
	IndexDir        string   `json:"indexDir"`
	ChunkSize       int      `json:"chunkSize,omitempty"`
	TopK            int      `json:"topK,omitempty"`
	Timeout         int      `json:"timeout,omitempty"`
	Extensions      []string `json:"extensions,omitempty"`
	LogFile         string   `json:"logFile,omitempty"`
	Debug           bool     `json:"debug"`
	ConfigPath      string   `json:"-"`
}

// BaseURL returns the model server base URL without a trailing slash.
func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.OllamaURL)
	if url == "" {
		url = "http://localhost:11434"
	}
	return strings.TrimRight(url, "/")
}

// Generation returns the generation model name, applying the default if unset.
func (c Config) Generation() string {
	if m := strings.TrimSpace(c.GenerationModel); m != "" {
		return m
	}
	return "mistral:latest"
}

// Embedding returns the embedding model name, applying the default if unset.
func (c Config) Embedding() string {
	if m := strings.TrimSpace(c.EmbeddingModel); m != "" {
		return m
	}
	return "nomic-embed-text"
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// ChunkRunes returns the configured chunk size in runes, applying the default if not set.
func (c Config) ChunkRunes() int {
	if c.ChunkSize <= 0 {
		return defaultChunkSize
	}
	return c.ChunkSize
}

// RetrievalTopK returns the configured top-k, applying the default if not set.
func (c Config) RetrievalTopK() int {
	if c.TopK <= 0 {
		return defaultTopK
	}
	return c.TopK
}

// AllowedExtensions returns the corpus file extensions, lowercased with a
// leading dot, defaulting to .txt only.
func (c Config) AllowedExtensions() []string {
	if len(c.Extensions) == 0 {
		return []string{".txt"}
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return []string{".txt"}
	}
	return exts
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "papyr.log"
}

// Validate checks the constraints the schema cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("dataDir is required")
	}
	if strings.TrimSpace(c.IndexDir) == "" {
		return fmt.Errorf("indexDir is required")
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if os.IsNotExist(err) && path == DefaultConfigPath {
		config, legacyErr := loadFromPath(legacyConfigPath)
		if legacyErr == nil {
			config.ConfigPath = legacyConfigPath
			return config, nil
		}
		if os.IsNotExist(legacyErr) {
			return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
	}

	return Config{}, err
}

func loadFromPath(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := ValidateSchema(raw); err != nil {
		return Config{}, fmt.Errorf("config file %q: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %q: %w", path, err)
	}
	return config, nil
}
