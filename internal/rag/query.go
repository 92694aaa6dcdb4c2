// internal/rag/query.go
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/skellert/papyr/internal/store"
)

// Generator streams generated text; every produced value is the full answer
// accumulated so far.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string) <-chan string
}

// Engine answers questions over the indexed corpus: embed the question,
// retrieve the nearest chunks, assemble a context prompt, stream the answer.
type Engine struct {
	Store     store.VectorStore
	Embedder  Embedder
	Generator Generator
}

const promptTemplate = "Use the following research context to answer the question concisely and accurately:\n\n%s\n\nQuestion: %s\nAnswer:"

// Answer produces the streamed answer for question using the topK most
// similar chunks as context. Failures inside the pipeline surface as a
// single produced value, never as an error past this boundary; a blank
// question produces a single prompt-for-input value without any network
// calls.
func (e *Engine) Answer(ctx context.Context, question string, topK int) <-chan string {
	if strings.TrimSpace(question) == "" {
		return singleValue(ctx, "Please enter a question.")
	}

	embedding, err := e.Embedder.Embed(ctx, question)
	if err != nil {
		return singleValue(ctx, fmt.Sprintf("Error getting question embedding: %v", err))
	}

	results, err := e.Store.Query(ctx, embedding, topK)
	if err != nil {
		return singleValue(ctx, fmt.Sprintf("Error querying vector index: %v", err))
	}

	docs := make([]string, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Document)
	}
	contextBlock := strings.Join(docs, "\n\n")

	prompt := fmt.Sprintf(promptTemplate, contextBlock, question)
	return e.Generator.GenerateStream(ctx, prompt)
}

func singleValue(ctx context.Context, value string) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		select {
		case out <- value:
		case <-ctx.Done():
		}
	}()
	return out
}
