package service

import (
	"context"
	"fmt"

	"github.com/chuimeng/vecdex/internal/chunker"
	"github.com/chuimeng/vecdex/internal/config"
	"github.com/chuimeng/vecdex/internal/embedder"
	"github.com/chuimeng/vecdex/internal/embedding"
	"github.com/chuimeng/vecdex/internal/loaders"
	"github.com/chuimeng/vecdex/internal/parser"
	"github.com/chuimeng/vecdex/internal/pipeline"
	"github.com/chuimeng/vecdex/internal/vectorstore"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// Service wires configuration into a ready-to-run ingestion pipeline and is
// the single entry point shared by the CLI and the HTTP server.
type Service struct {
	pipeline *pipeline.IndexingPipeline
	writer   vectorstore.Writer
	log      *logger.Logger
}

// New builds the full component graph from configuration: embedding backend,
// dimension-normalizing provider, vector store writer, chunker and pipeline.
func New(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*Service, error) {
	backend, err := embedding.NewBackend(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding backend: %w", err)
	}

	// The normalizer reconciles whatever the backend natively emits with the
	// single dimensionality the collection is created with.
	var provider embedder.Provider = embedder.NewBackendProvider(backend, cfg.Embedding.BatchSize)
	provider = embedder.NewNormalizer(provider, cfg.Embedding.Dimension)

	writer, err := vectorstore.NewWriter(ctx, cfg.Storage, cfg.Embedding.Dimension, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store writer: %w", err)
	}

	fixedChunker, err := chunker.NewFixedChunker(cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	if err != nil {
		return nil, err
	}

	return &Service{
		pipeline: pipeline.NewIndexingPipeline(parser.NewTextParser(), fixedChunker, provider, writer, log),
		writer:   writer,
		log:      log,
	}, nil
}

// Ingest runs the pipeline for one document. When fileHash is empty it is
// computed from the file's raw bytes, matching what a caller would supply.
func (s *Service) Ingest(ctx context.Context, path, docID, fileHash string) (*pipeline.Result, error) {
	if fileHash == "" {
		computed, err := loaders.FileSHA256(path)
		if err != nil {
			return nil, err
		}
		fileHash = computed
	}
	return s.pipeline.Run(ctx, path, docID, fileHash)
}

// Health reports vector store connectivity.
func (s *Service) Health(ctx context.Context) error {
	return s.writer.Ping(ctx)
}
