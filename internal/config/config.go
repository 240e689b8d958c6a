package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo contains basic information about the application.
type AppInfo struct {
	Name        string `yaml:"name"`        // Application name
	Environment string `yaml:"environment"` // Runtime environment (e.g. "development", "production")
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // Log level ("debug", "info", "warn", "error")
}

// ChunkingConfig configures the fixed-size chunker.
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunkSize"` // Window size in runes
	Overlap   int `yaml:"overlap"`   // Overlap between consecutive windows in runes
}

// EmbeddingConfig configures the embedding provider and its backend.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`  // Backend provider ("ollama", "openai", "gemini", "huggingface", "mock")
	Model     string `yaml:"model"`     // Model name for the chosen provider
	BaseURL   string `yaml:"baseURL"`   // Service base URL (optional, provider-dependent)
	APIKeyEnv string `yaml:"apiKeyEnv"` // Environment variable holding the API key
	Dimension int    `yaml:"dimension"` // Target vector dimensionality enforced by normalization
	BatchSize int    `yaml:"batchSize"` // Texts per embedding sub-batch; 0 means one call for the whole document
}

// MilvusConfig configures the Milvus vector store backend.
type MilvusConfig struct {
	Address string `yaml:"address"` // Milvus service address (host:port)
}

// QdrantConfig configures the Qdrant vector store backend.
type QdrantConfig struct {
	URL       string `yaml:"url"`       // Qdrant base URL (e.g. "http://localhost:6333")
	APIKeyEnv string `yaml:"apiKeyEnv"` // Environment variable holding the API key (optional)
}

// StorageConfig selects and configures the vector store.
type StorageConfig struct {
	Backend          string       `yaml:"backend"`          // "milvus" or "qdrant"
	Collection       string       `yaml:"collection"`       // Target collection name
	Metric           string       `yaml:"metric"`           // Distance metric ("cosine", "l2", "ip")
	DeterministicIDs *bool        `yaml:"deterministicIDs"` // Derive point IDs from (doc_id, file_hash, chunk_index); default true
	Milvus           MilvusConfig `yaml:"milvus"`
	Qdrant           QdrantConfig `yaml:"qdrant"`
}

// ServerConfig configures the HTTP ingestion server.
type ServerConfig struct {
	Address string `yaml:"address"` // Listen address (e.g. ":8080")
}

// AppConfig is the root structure of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Logger    LoggerConfig    `yaml:"logger"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
}

// LoadConfig reads and parses the YAML configuration file at the given path,
// applies defaults and validates cross-field constraints.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Chunking.ChunkSize == 0 {
		// Chunking block omitted entirely: use the stock window geometry.
		c.Chunking.ChunkSize = 200
		c.Chunking.Overlap = 50
	}
	if c.Embedding.Dimension == 0 {
		c.Embedding.Dimension = 1536
	}
	if c.Storage.Collection == "" {
		c.Storage.Collection = "documents"
	}
	if c.Storage.Metric == "" {
		c.Storage.Metric = "cosine"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "milvus"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
}

// Validate checks cross-field constraints that cannot be expressed per field.
func (c *AppConfig) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunking.chunkSize must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunking.overlap must be in [0, chunkSize), got overlap=%d chunkSize=%d",
			c.Chunking.Overlap, c.Chunking.ChunkSize)
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", c.Embedding.Dimension)
	}
	if c.Embedding.BatchSize < 0 {
		return fmt.Errorf("embedding.batchSize must not be negative, got %d", c.Embedding.BatchSize)
	}
	switch c.Storage.Backend {
	case "milvus", "qdrant":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	switch c.Storage.Metric {
	case "cosine", "l2", "ip":
	default:
		return fmt.Errorf("unsupported storage metric: %s", c.Storage.Metric)
	}
	return nil
}

// UseDeterministicIDs reports whether point identifiers should be derived
// from document and chunk identity rather than freshly generated per run.
func (c *StorageConfig) UseDeterministicIDs() bool {
	if c.DeterministicIDs == nil {
		return true
	}
	return *c.DeterministicIDs
}
