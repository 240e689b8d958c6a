package embedding

import (
	"context"
	"errors"
)

var (
	// ErrBackendUnavailable wraps transport-level failures reaching the
	// embedding backend. Callers may retry the whole call.
	ErrBackendUnavailable = errors.New("embedding backend unavailable")

	// ErrMalformedResponse wraps responses whose shape violates the backend
	// contract (missing vectors, count mismatch). Retrying without changing
	// the input will not help.
	ErrMalformedResponse = errors.New("malformed embedding response")
)

// Backend is the contract every embedding backend client implements.
// Both methods block until the backend responds; the context bounds their
// lifetime since the underlying call is a network operation.
type Backend interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding vector per input text, in input
	// order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the identifier of the model producing the vectors.
	Model() string
}
