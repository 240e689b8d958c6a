package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chuimeng/vecdex/internal/schema"
)

// ErrEmptyBatch is returned when Upsert is called with no chunks. The
// pipeline aborts empty documents before storage, so hitting this indicates
// an internal contract violation.
var ErrEmptyBatch = errors.New("no chunks provided for upsert")

// Writer persists embedded chunks into a vector store collection.
type Writer interface {
	// EnsureCollection creates the target collection with the expected
	// vector dimensionality and distance metric if it does not exist yet.
	// It is idempotent and safe to call on every pipeline run; a concurrent
	// first-time creation racing this call is treated as success.
	EnsureCollection(ctx context.Context) error

	// Upsert writes the whole batch of embedded chunks in one call,
	// attaching the document identity and a single shared ingestion
	// timestamp to every chunk's payload.
	Upsert(ctx context.Context, chunks []schema.Chunk, identity schema.Identity) error

	// Ping verifies store connectivity.
	Ping(ctx context.Context) error
}

// pointID produces the point identifier for one chunk. When deterministic,
// the ID is a name-based UUID over (doc_id, file_hash, chunk_index), so
// re-ingesting an unchanged document overwrites its own points instead of
// duplicating them. Otherwise a fresh random UUID is generated per run,
// matching always-insert semantics.
func pointID(deterministic bool, identity schema.Identity, chunkIndex int) string {
	if !deterministic {
		return uuid.New().String()
	}
	name := fmt.Sprintf("%s|%s|%d", identity.DocID, identity.FileHash, chunkIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("vecdex:"+name)).String()
}
