package embedding

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAIBackend generates embeddings with the OpenAI embeddings API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend creates an OpenAI API client for the given model.
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	config := openai.DefaultConfig(apiKey)
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Embed generates an embedding vector for a single text.
func (b *OpenAIBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := b.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding vector per text with a single API call.
func (b *OpenAIBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(b.model),
	}

	resp, err := b.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: openai create embeddings failed: %v", ErrBackendUnavailable, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: openai returned %d embeddings for %d texts",
			ErrMalformedResponse, len(resp.Data), len(texts))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}

	return embeddings, nil
}

// Model returns the OpenAI embedding model name.
func (b *OpenAIBackend) Model() string { return b.model }

var _ Backend = (*OpenAIBackend)(nil)
