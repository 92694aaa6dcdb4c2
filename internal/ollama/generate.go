// internal/ollama/generate.go
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/skellert/papyr/internal/logging"
)

const streamEndMarker = "[DONE]"

// streamPayload covers the two accepted wire shapes for one streamed unit:
// Ollama's native {"response": "..."} and the OpenAI-style choices list with
// nested delta/text fields.
type streamPayload struct {
	Response string `json:"response"`
	Choices  []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Text string `json:"text"`
	} `json:"choices"`
	Done bool `json:"done"`
}

// deltaShape identifies which payload variant carried the extracted text.
type deltaShape int

const (
	shapeNone deltaShape = iota
	shapeDirect
	shapeChoices
)

// delta resolves the payload into its textual delta once, reporting which of
// the two shapes supplied it.
func (p *streamPayload) delta() (string, deltaShape) {
	if p.Response != "" {
		return p.Response, shapeDirect
	}
	if len(p.Choices) == 0 {
		return "", shapeNone
	}
	var b strings.Builder
	for _, choice := range p.Choices {
		if choice.Delta.Content != "" {
			b.WriteString(choice.Delta.Content)
		} else if choice.Text != "" {
			b.WriteString(choice.Text)
		}
	}
	if b.Len() == 0 {
		return "", shapeNone
	}
	return b.String(), shapeChoices
}

// GenerateStream opens a streaming generation request and returns a channel
// of accumulated answer text. Every value is the full answer so far, not a
// delta. Service failures are reported as a single error-describing value;
// the channel always closes when the stream ends. Producer sends select on
// ctx, so cancelling the context releases an abandoned stream.
func (c *Client) GenerateStream(ctx context.Context, prompt string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		emit := func(value string) bool {
			select {
			case out <- value:
				return true
			case <-ctx.Done():
				return false
			}
		}
		fail := func(err error) {
			logging.LogEvent("%v", fmt.Errorf("%w: %v", ErrGeneration, err))
			emit("Error calling Ollama generate API: " + err.Error())
		}

		payload := map[string]any{
			"model":  c.generateModel,
			"prompt": prompt,
			"stream": true,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			fail(err)
			return
		}

		streamCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(streamCtx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			fail(err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		logging.LogRequest("PAPYR->LLM", c.baseURL, c.generateModel, body)

		resp, err := c.client.Do(req)
		if err != nil {
			fail(err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			logging.LogRequest("LLM->PAPYR", c.baseURL, c.generateModel, raw)
			fail(fmt.Errorf("/api/generate returned %s: %s", resp.Status, strings.TrimSpace(string(raw))))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 8*1024*1024)

		var accumulated strings.Builder
		emitted := false
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if after, ok := strings.CutPrefix(line, "data:"); ok {
				line = strings.TrimSpace(after)
			}
			if line == "" || line == streamEndMarker {
				continue
			}

			var unit streamPayload
			if err := json.Unmarshal([]byte(line), &unit); err != nil {
				// Malformed units are skipped, never fatal.
				continue
			}
			text, shape := unit.delta()
			if shape == shapeNone {
				continue
			}
			accumulated.WriteString(text)
			if !emit(accumulated.String()) {
				return
			}
			emitted = true
		}
		if err := scanner.Err(); err != nil {
			fail(err)
			return
		}

		if !emitted {
			emit(accumulated.String())
		}
	}()

	return out
}
