package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleBackend generates embeddings with the Google GenAI embedding API.
type GoogleBackend struct {
	model     *genai.EmbeddingModel
	modelName string
}

// NewGoogleBackend creates a GenAI client and binds it to the given
// embedding model.
func NewGoogleBackend(apiKey, modelName string) (*GoogleBackend, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GoogleBackend{
		model:     client.EmbeddingModel(modelName),
		modelName: modelName,
	}, nil
}

// Embed generates an embedding vector for a single text.
func (b *GoogleBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := b.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("%w: genai embed failed: %v", ErrBackendUnavailable, err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("%w: genai returned no embedding", ErrMalformedResponse)
	}
	return res.Embedding.Values, nil
}

// EmbedBatch generates one embedding vector per text with a single batch
// request.
func (b *GoogleBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batch := b.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := b.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: genai batch embed failed: %v", ErrBackendUnavailable, err)
	}

	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: genai returned %d embeddings for %d texts",
			ErrMalformedResponse, len(res.Embeddings), len(texts))
	}

	embeddings := make([][]float32, 0, len(res.Embeddings))
	for _, emb := range res.Embeddings {
		embeddings = append(embeddings, emb.Values)
	}

	return embeddings, nil
}

// Model returns the GenAI embedding model name.
func (b *GoogleBackend) Model() string { return b.modelName }

var _ Backend = (*GoogleBackend)(nil)
