package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chuimeng/vecdex/internal/schema"
)

// ErrInvalidChunking is returned by NewFixedChunker when the window
// parameters cannot make forward progress.
var ErrInvalidChunking = errors.New("invalid chunking parameters")

// FixedChunker splits normalized text into overlapping fixed-size windows.
// Window boundaries are rune positions, so multi-byte text never splits
// inside a code point. It is stateless after construction and safe for
// concurrent use.
type FixedChunker struct {
	chunkSize int
	overlap   int
}

// NewFixedChunker validates the window geometry once, at construction.
// The advance step is chunkSize-overlap, so overlap >= chunkSize would
// never terminate.
func NewFixedChunker(chunkSize, overlap int) (*FixedChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidChunking, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got overlap=%d size=%d",
			ErrInvalidChunking, overlap, chunkSize)
	}
	return &FixedChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits text into overlapping windows with positional metadata.
// Empty or whitespace-only input produces an empty slice, not an error.
// The final window may be shorter than the chunk size; no padding occurs.
func (c *FixedChunker) Chunk(text string) []schema.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	textLength := len(runes)
	step := c.chunkSize - c.overlap

	var chunks []schema.Chunk
	for start := 0; start < textLength; start += step {
		end := start + c.chunkSize
		if end > textLength {
			end = textLength
		}
		chunks = append(chunks, schema.Chunk{
			Index:       len(chunks),
			Text:        string(runes[start:end]),
			StartOffset: start,
			EndOffset:   end,
		})
	}

	// The global count is unknowable during emission, so numbering is a
	// separate finalization pass over the produced sequence.
	total := len(chunks)
	for i := range chunks {
		chunks[i].TotalChunks = total
	}

	return chunks
}

// ChunkSize returns the configured window size in runes.
func (c *FixedChunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap between consecutive windows in runes.
func (c *FixedChunker) Overlap() int { return c.overlap }
