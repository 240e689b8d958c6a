package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// MockBackend produces deterministic pseudo-embeddings derived from the
// input text's hash. It exists for tests and offline runs; vectors from it
// carry no semantic meaning.
type MockBackend struct {
	dim int
}

// NewMockBackend creates a mock backend emitting vectors of the given
// dimensionality.
func NewMockBackend(dim int) *MockBackend {
	if dim <= 0 {
		dim = 1536
	}
	return &MockBackend{dim: dim}
}

// Embed generates a deterministic vector for a single text.
func (b *MockBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	return b.vectorFor(text), nil
}

// EmbedBatch generates one deterministic vector per text.
func (b *MockBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = b.vectorFor(text)
	}
	return embeddings, nil
}

// Model returns the mock model identifier.
func (b *MockBackend) Model() string { return "mock" }

// vectorFor expands the text's SHA-256 digest into dim unit-range floats.
// Identical texts always map to identical vectors.
func (b *MockBackend) vectorFor(text string) []float32 {
	seed := sha256.Sum256([]byte(text))
	vec := make([]float32, b.dim)
	for i := range vec {
		word := binary.BigEndian.Uint32(seed[(i*4)%28:])
		// Mix the position in so the vector is not periodic.
		word ^= uint32(i) * 2654435761
		vec[i] = float32(word) / float32(math.MaxUint32)
	}
	return vec
}

var _ Backend = (*MockBackend)(nil)
