package embedder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chuimeng/vecdex/internal/embedding"
	"github.com/chuimeng/vecdex/internal/schema"
)

// BackendProvider embeds chunks through an embedding backend client and
// copies the backend's native output dimensionality through unchanged.
// When batchSize is positive, the input is embedded as concurrent sub-batches
// of at most batchSize texts and reassembled in input order; a batchSize of
// zero means one blocking call for the whole input.
type BackendProvider struct {
	backend   embedding.Backend
	batchSize int
}

// NewBackendProvider creates a Provider over the given backend client.
func NewBackendProvider(backend embedding.Backend, batchSize int) *BackendProvider {
	return &BackendProvider{backend: backend, batchSize: batchSize}
}

// EmbedChunks embeds every chunk's text and stamps the model identifier and
// the vector's own length as the dimensionality.
func (p *BackendProvider) EmbedChunks(ctx context.Context, chunks []schema.Chunk) ([]schema.Chunk, error) {
	if len(chunks) == 0 {
		return []schema.Chunk{}, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.embedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	embedded := make([]schema.Chunk, len(chunks))
	for i, chunk := range chunks {
		chunk.Embedding = vectors[i]
		chunk.EmbeddingModel = p.backend.Model()
		chunk.EmbeddingDim = len(vectors[i])
		embedded[i] = chunk
	}

	return embedded, nil
}

func (p *BackendProvider) embedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if p.batchSize <= 0 || len(texts) <= p.batchSize {
		return p.backend.EmbedBatch(ctx, texts)
	}

	// Each sub-batch writes into its own window of the result slice, so
	// chunk order is preserved regardless of completion order.
	vectors := make([][]float32, len(texts))
	eg, gCtx := errgroup.WithContext(ctx)

	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		start, end := start, end

		eg.Go(func() error {
			batch, err := p.backend.EmbedBatch(gCtx, texts[start:end])
			if err != nil {
				return fmt.Errorf("embedding sub-batch [%d:%d] failed: %w", start, end, err)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Model returns the backend's model identifier.
func (p *BackendProvider) Model() string { return p.backend.Model() }

// compile-time check to ensure BackendProvider implements the Provider interface
var _ Provider = (*BackendProvider)(nil)
