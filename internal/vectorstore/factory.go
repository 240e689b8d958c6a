package vectorstore

import (
	"context"
	"fmt"
	"os"

	"github.com/chuimeng/vecdex/internal/config"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// NewWriter creates the configured vector store writer.
func NewWriter(ctx context.Context, cfg config.StorageConfig, dim int, log *logger.Logger) (Writer, error) {
	switch cfg.Backend {
	case "milvus":
		return NewMilvusWriter(ctx, cfg.Milvus.Address, MilvusOptions{
			Collection:       cfg.Collection,
			Dim:              dim,
			Metric:           cfg.Metric,
			DeterministicIDs: cfg.UseDeterministicIDs(),
		}, log)
	case "qdrant":
		apiKey := ""
		if cfg.Qdrant.APIKeyEnv != "" {
			apiKey = os.Getenv(cfg.Qdrant.APIKeyEnv)
		}
		return NewQdrantWriter(cfg.Qdrant.URL, QdrantOptions{
			Collection:       cfg.Collection,
			Dim:              dim,
			Metric:           cfg.Metric,
			APIKey:           apiKey,
			DeterministicIDs: cfg.UseDeterministicIDs(),
		}, log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
