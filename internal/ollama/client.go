// internal/ollama/client.go
// Package ollama provides embedding and streaming generation clients for
// Ollama-compatible HTTP endpoints.
package ollama

import (
	"errors"
	"net/http"
	"time"

	"github.com/skellert/papyr/internal/appconfig"
)

var (
	// ErrEmbedding marks failures of the embedding service: unreachable
	// endpoint, non-success status, or a response missing the vector.
	ErrEmbedding = errors.New("embedding service error")
	// ErrGeneration marks failures of the generation service.
	ErrGeneration = errors.New("generation service error")
)

// Client talks to a single Ollama-compatible host.
type Client struct {
	client         *http.Client
	baseURL        string
	embedModel     string
	generateModel  string
	timeout        time.Duration
}

// New constructs a Client configured with the application's request timeout.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL:       cfg.BaseURL(),
		embedModel:    cfg.Embedding(),
		generateModel: cfg.Generation(),
		timeout:       timeout,
	}
}
