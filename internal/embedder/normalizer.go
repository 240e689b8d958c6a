package embedder

import (
	"context"

	"github.com/chuimeng/vecdex/internal/schema"
)

// Normalizer wraps another Provider and enforces a fixed target
// dimensionality on its output: longer native vectors are truncated to the
// first dim components, shorter ones are right-padded with zeros. The
// reconciliation is lossy but deterministic; it exists because vector store
// collections are created with one fixed dimension while models differ in
// their native output size.
type Normalizer struct {
	inner Provider
	dim   int
}

// NewNormalizer creates a dimension-normalizing decorator around inner.
func NewNormalizer(inner Provider, dim int) *Normalizer {
	return &Normalizer{inner: inner, dim: dim}
}

// EmbedChunks embeds through the wrapped provider and normalizes every
// vector to the target dimensionality, restamping EmbeddingDim to the
// declared target rather than the native size.
func (n *Normalizer) EmbedChunks(ctx context.Context, chunks []schema.Chunk) ([]schema.Chunk, error) {
	embedded, err := n.inner.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	for i := range embedded {
		embedded[i].Embedding = n.normalize(embedded[i].Embedding)
		embedded[i].EmbeddingDim = n.dim
	}

	return embedded, nil
}

func (n *Normalizer) normalize(vector []float32) []float32 {
	if len(vector) == n.dim {
		return vector
	}
	if len(vector) > n.dim {
		return vector[:n.dim]
	}

	padded := make([]float32, n.dim)
	copy(padded, vector)
	return padded
}

// Model returns the wrapped provider's model identifier.
func (n *Normalizer) Model() string { return n.inner.Model() }

// Dim returns the enforced target dimensionality.
func (n *Normalizer) Dim() int { return n.dim }

// compile-time check to ensure Normalizer implements the Provider interface
var _ Provider = (*Normalizer)(nil)
