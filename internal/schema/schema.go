package schema

const (
	// PayloadKeyDocID is the payload key for the caller-supplied logical document identifier.
	PayloadKeyDocID = "doc_id"
	// PayloadKeySourceFile is the payload key for the display name of the ingested file.
	PayloadKeySourceFile = "source_file"
	// PayloadKeyFileHash is the payload key for the SHA-256 content hash used for deduplication.
	PayloadKeyFileHash = "file_hash"
	// PayloadKeyIngestedAt is the payload key for the RFC 3339 timestamp of the ingestion run.
	PayloadKeyIngestedAt = "ingested_at"
	// PayloadKeyChunkIndex is the payload key for the chunk's ordinal position in its document.
	PayloadKeyChunkIndex = "chunk_index"
	// PayloadKeyTotalChunks is the payload key for the number of chunks the document produced.
	PayloadKeyTotalChunks = "total_chunks"
	// PayloadKeyText is the payload key for the chunk's text content.
	PayloadKeyText = "text"
)

// Chunk is the central data structure of the ingestion pipeline: a bounded
// contiguous slice of a document's normalized text, enriched in place as it
// moves through chunking, embedding and storage.
type Chunk struct {
	// Index is the zero-based ordinal position within the parent document's chunk sequence.
	Index int `json:"chunk_index"`

	// Text is the substring of the parent's normalized text assigned to this chunk.
	Text string `json:"text"`

	// StartOffset and EndOffset are rune offsets into the parent's normalized text.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// TotalChunks is the number of chunks produced for the parent document.
	// It is identical across all chunks of one document and is stamped in a
	// second pass after the full split.
	TotalChunks int `json:"total_chunks"`

	// Embedding is the vector representation of Text. Empty until the
	// embedding stage completes.
	Embedding []float32 `json:"embedding,omitempty"`

	// EmbeddingModel identifies the provider/model that produced the vector.
	EmbeddingModel string `json:"embedding_model,omitempty"`

	// EmbeddingDim is the declared target dimensionality, which may differ
	// from the model's native output size when normalization is applied.
	EmbeddingDim int `json:"embedding_dim,omitempty"`
}

// Document is a loaded source document before chunking.
type Document struct {
	// Text is the raw extracted text content.
	Text string

	// Metadata holds loader-specific information such as file_name and page count.
	Metadata map[string]interface{}
}

// Identity carries the document-level deduplication and versioning key that
// is attached uniformly to every chunk's persisted payload.
type Identity struct {
	DocID      string
	SourceFile string
	FileHash   string
}
