package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chuimeng/vecdex/internal/chunker"
	"github.com/chuimeng/vecdex/internal/embedder"
	"github.com/chuimeng/vecdex/internal/loaders"
	"github.com/chuimeng/vecdex/internal/parser"
	"github.com/chuimeng/vecdex/internal/schema"
	"github.com/chuimeng/vecdex/internal/vectorstore"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// ErrEmptyDocument is returned when a document yields no chunks. The run
// aborts before the embedding and storage stages so no backend is called
// for nothing.
var ErrEmptyDocument = errors.New("no chunks created from document text")

// IndexingPipeline sequences loading, normalization, chunking, embedding and
// storage for one document. Each Run is independent; the pipeline holds no
// per-document state, so one instance may serve concurrent runs.
type IndexingPipeline struct {
	parser   *parser.TextParser
	chunker  *chunker.FixedChunker
	provider embedder.Provider
	writer   vectorstore.Writer
	log      *logger.Logger
}

// Result summarizes a completed ingestion run.
type Result struct {
	Identity   schema.Identity
	ChunkCount int
}

// NewIndexingPipeline creates a pipeline over the given components.
func NewIndexingPipeline(
	textParser *parser.TextParser,
	fixedChunker *chunker.FixedChunker,
	provider embedder.Provider,
	writer vectorstore.Writer,
	log *logger.Logger,
) *IndexingPipeline {
	return &IndexingPipeline{
		parser:   textParser,
		chunker:  fixedChunker,
		provider: provider,
		writer:   writer,
		log:      log,
	}
}

// Run ingests one document: select a loader by extension, load, normalize,
// chunk, embed, ensure the collection and upsert. Every failure carries the
// stage name and the document identity so the run can be diagnosed and
// repeated.
func (p *IndexingPipeline) Run(ctx context.Context, path, docID, fileHash string) (*Result, error) {
	identity := schema.Identity{
		DocID:      docID,
		SourceFile: filepath.Base(path),
		FileHash:   fileHash,
	}
	log := p.log.WithPayload(map[string]interface{}{
		"doc_id":    identity.DocID,
		"file_hash": identity.FileHash,
		"source":    identity.SourceFile,
	})
	log.Info(fmt.Sprintf("Starting ingestion for %s", path))

	loader, err := loaders.SelectLoader(path)
	if err != nil {
		return nil, p.fail(log, "load", identity, err)
	}

	doc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, p.fail(log, "load", identity, err)
	}

	cleanText := p.parser.Parse(doc.Text)

	chunks := p.chunker.Chunk(cleanText)
	log.Debug(fmt.Sprintf("Split into %d chunks", len(chunks)))
	if len(chunks) == 0 {
		return nil, p.fail(log, "chunk", identity, ErrEmptyDocument)
	}

	embedded, err := p.provider.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, p.fail(log, "embed", identity, err)
	}

	if err := p.writer.EnsureCollection(ctx); err != nil {
		return nil, p.fail(log, "ensure_collection", identity, err)
	}

	if err := p.writer.Upsert(ctx, embedded, identity); err != nil {
		return nil, p.fail(log, "upsert", identity, err)
	}

	log.Info(fmt.Sprintf("Successfully ingested %s (%d chunks)", identity.SourceFile, len(embedded)))
	return &Result{Identity: identity, ChunkCount: len(embedded)}, nil
}

func (p *IndexingPipeline) fail(log *logger.Logger, stage string, identity schema.Identity, err error) error {
	log.Error(fmt.Sprintf("Stage %s failed: %v", stage, err))
	return fmt.Errorf("stage %s failed for doc_id=%s file_hash=%s: %w",
		stage, identity.DocID, identity.FileHash, err)
}
