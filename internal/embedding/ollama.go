package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaBackend generates embeddings with a locally running Ollama server,
// which is the on-device path: the model executes on this machine, not a
// remote API.
type OllamaBackend struct {
	client *ollama.Client
	model  string
}

// NewOllamaBackend creates a client for the Ollama server at baseURL,
// defaulting to the standard local address when baseURL is empty.
func NewOllamaBackend(model, baseURL string) (*OllamaBackend, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL: %w", err)
	}

	// Local model inference can be slow on first load.
	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &OllamaBackend{client: ollama.NewClient(parsedURL, hc), model: model}, nil
}

// Embed generates an embedding vector for a single text.
func (b *OllamaBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := b.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding vector per text using Ollama's batch
// embed endpoint.
func (b *OllamaBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := b.client.Embed(ctx, &ollama.EmbedRequest{
		Model: b.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ollama embed failed: %v", ErrBackendUnavailable, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: ollama returned %d embeddings for %d texts",
			ErrMalformedResponse, len(resp.Embeddings), len(texts))
	}

	return resp.Embeddings, nil
}

// Model returns the Ollama model name.
func (b *OllamaBackend) Model() string { return b.model }

var _ Backend = (*OllamaBackend)(nil)
