package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/chuimeng/vecdex/internal/schema"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// Field names of the Milvus collection schema.
const (
	FieldID          = "id"
	FieldEmbedding   = "embedding"
	FieldDocID       = schema.PayloadKeyDocID
	FieldSourceFile  = schema.PayloadKeySourceFile
	FieldFileHash    = schema.PayloadKeyFileHash
	FieldIngestedAt  = schema.PayloadKeyIngestedAt
	FieldChunkIndex  = schema.PayloadKeyChunkIndex
	FieldTotalChunks = schema.PayloadKeyTotalChunks
	FieldText        = schema.PayloadKeyText
)

// MilvusWriter persists embedded chunks into a Milvus collection.
type MilvusWriter struct {
	log           *logger.Logger
	client        client.Client
	collection    string
	dim           int
	metric        entity.MetricType
	deterministic bool
}

// MilvusOptions configures a MilvusWriter.
type MilvusOptions struct {
	Collection       string
	Dim              int
	Metric           string // "cosine", "l2" or "ip"
	DeterministicIDs bool
}

// NewMilvusWriter connects to Milvus at the given address and returns a
// Writer targeting the configured collection.
func NewMilvusWriter(ctx context.Context, address string, opts MilvusOptions, log *logger.Logger) (*MilvusWriter, error) {
	c, err := client.NewClient(ctx, client.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Milvus at %s: %w", address, err)
	}

	metric, err := milvusMetric(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &MilvusWriter{
		log:           log,
		client:        c,
		collection:    opts.Collection,
		dim:           opts.Dim,
		metric:        metric,
		deterministic: opts.DeterministicIDs,
	}, nil
}

func milvusMetric(metric string) (entity.MetricType, error) {
	switch metric {
	case "cosine", "":
		return entity.COSINE, nil
	case "l2":
		return entity.L2, nil
	case "ip":
		return entity.IP, nil
	default:
		return "", fmt.Errorf("unsupported metric for Milvus: %s", metric)
	}
}

// EnsureCollection creates the collection, its vector index and loads it,
// skipping creation when the collection already exists.
func (w *MilvusWriter) EnsureCollection(ctx context.Context) error {
	exists, err := w.client.HasCollection(ctx, w.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", w.collection, err)
	}

	if !exists {
		if err := w.createCollection(ctx); err != nil {
			// A concurrent first-time creation may have won the race.
			if nowExists, checkErr := w.client.HasCollection(ctx, w.collection); checkErr != nil || !nowExists {
				return err
			}
			w.log.Warn(fmt.Sprintf("Collection %s was created concurrently, continuing", w.collection))
		}
	}

	if err := w.client.LoadCollection(ctx, w.collection, false); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", w.collection, err)
	}
	return nil
}

func (w *MilvusWriter) createCollection(ctx context.Context) error {
	collSchema := entity.NewSchema().
		WithName(w.collection).
		WithDescription("document chunks with embeddings and deduplication metadata").
		WithField(entity.NewField().WithName(FieldID).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(FieldEmbedding).
			WithDataType(entity.FieldTypeFloatVector).WithDim(int64(w.dim))).
		WithField(entity.NewField().WithName(FieldDocID).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(256)).
		WithField(entity.NewField().WithName(FieldSourceFile).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(1024)).
		WithField(entity.NewField().WithName(FieldFileHash).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
		WithField(entity.NewField().WithName(FieldIngestedAt).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
		WithField(entity.NewField().WithName(FieldChunkIndex).
			WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().WithName(FieldTotalChunks).
			WithDataType(entity.FieldTypeInt64)).
		WithField(entity.NewField().WithName(FieldText).
			WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535))

	w.log.Info(fmt.Sprintf("Creating Milvus collection %s (dim=%d, metric=%s)", w.collection, w.dim, w.metric))
	if err := w.client.CreateCollection(ctx, collSchema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", w.collection, err)
	}

	idx, err := entity.NewIndexHNSW(w.metric, 8, 96)
	if err != nil {
		return fmt.Errorf("failed to build HNSW index: %w", err)
	}
	if err := w.client.CreateIndex(ctx, w.collection, FieldEmbedding, idx, false); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", FieldEmbedding, err)
	}
	return nil
}

// Upsert writes the document's chunks as one batched call. Every chunk gets
// the same ingestion timestamp so a run is recognizable in the payload.
func (w *MilvusWriter) Upsert(ctx context.Context, chunks []schema.Chunk, identity schema.Identity) error {
	if len(chunks) == 0 {
		return ErrEmptyBatch
	}

	ingestedAt := time.Now().UTC().Format(time.RFC3339)

	ids := make([]string, len(chunks))
	vectors := make([][]float32, len(chunks))
	docIDs := make([]string, len(chunks))
	sourceFiles := make([]string, len(chunks))
	fileHashes := make([]string, len(chunks))
	ingestedAts := make([]string, len(chunks))
	chunkIndexes := make([]int64, len(chunks))
	totalChunks := make([]int64, len(chunks))
	texts := make([]string, len(chunks))

	for i, chunk := range chunks {
		ids[i] = pointID(w.deterministic, identity, chunk.Index)
		vectors[i] = chunk.Embedding
		docIDs[i] = identity.DocID
		sourceFiles[i] = identity.SourceFile
		fileHashes[i] = identity.FileHash
		ingestedAts[i] = ingestedAt
		chunkIndexes[i] = int64(chunk.Index)
		totalChunks[i] = int64(chunk.TotalChunks)
		texts[i] = chunk.Text
	}

	columns := []entity.Column{
		entity.NewColumnVarChar(FieldID, ids),
		entity.NewColumnFloatVector(FieldEmbedding, w.dim, vectors),
		entity.NewColumnVarChar(FieldDocID, docIDs),
		entity.NewColumnVarChar(FieldSourceFile, sourceFiles),
		entity.NewColumnVarChar(FieldFileHash, fileHashes),
		entity.NewColumnVarChar(FieldIngestedAt, ingestedAts),
		entity.NewColumnInt64(FieldChunkIndex, chunkIndexes),
		entity.NewColumnInt64(FieldTotalChunks, totalChunks),
		entity.NewColumnVarChar(FieldText, texts),
	}

	w.log.Info(fmt.Sprintf("Upserting %d chunks into Milvus collection %s", len(chunks), w.collection))
	if _, err := w.client.Upsert(ctx, w.collection, "" /* default partition */, columns...); err != nil {
		return fmt.Errorf("failed to upsert into Milvus collection %s: %w", w.collection, err)
	}
	return nil
}

// Ping verifies connectivity by listing collections.
func (w *MilvusWriter) Ping(ctx context.Context) error {
	if _, err := w.client.ListCollections(ctx); err != nil {
		return fmt.Errorf("milvus ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying Milvus connection.
func (w *MilvusWriter) Close() {
	if w.client != nil {
		w.client.Close()
	}
}

// compile-time check to ensure MilvusWriter implements the Writer interface
var _ Writer = (*MilvusWriter)(nil)
