package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/chuimeng/vecdex/internal/schema"
)

// ErrUnsupportedInput is returned when a value reaching the embedder is
// neither a raw text nor a chunk carrying text. It indicates an internal
// contract violation, not a transient condition.
var ErrUnsupportedInput = errors.New("unsupported input for embedding")

// Provider converts chunk text into fixed-length vectors. The output
// sequence has the same length and order as the input: embeddings are
// positionally matched to chunks, never matched by content.
type Provider interface {
	// EmbedChunks returns a copy of chunks with Embedding, EmbeddingModel
	// and EmbeddingDim populated. An empty input returns an empty output
	// without touching the backend.
	EmbedChunks(ctx context.Context, chunks []schema.Chunk) ([]schema.Chunk, error)

	// Model returns the identifier stamped on embedded chunks.
	Model() string
}

// CoerceChunks converts loosely typed input values into chunks. Each value
// may be a string, a schema.Chunk, or a *schema.Chunk; anything else fails
// with ErrUnsupportedInput. Inputs arriving from outside the typed pipeline
// (API payloads, ad-hoc callers) pass through here before embedding.
func CoerceChunks(inputs []interface{}) ([]schema.Chunk, error) {
	chunks := make([]schema.Chunk, 0, len(inputs))
	for i, input := range inputs {
		switch v := input.(type) {
		case string:
			chunks = append(chunks, schema.Chunk{Index: i, Text: v})
		case schema.Chunk:
			chunks = append(chunks, v)
		case *schema.Chunk:
			if v == nil {
				return nil, fmt.Errorf("%w: nil chunk at position %d", ErrUnsupportedInput, i)
			}
			chunks = append(chunks, *v)
		default:
			return nil, fmt.Errorf("%w: %T at position %d", ErrUnsupportedInput, input, i)
		}
	}
	return chunks, nil
}
