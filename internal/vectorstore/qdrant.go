package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chuimeng/vecdex/internal/schema"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// QdrantWriter persists embedded chunks through the Qdrant REST API. Qdrant
// has no SDK dependency here; the REST surface needed for ensure + upsert is
// three endpoints.
type QdrantWriter struct {
	log           *logger.Logger
	baseURL       string
	apiKey        string
	collection    string
	dim           int
	metric        string
	deterministic bool
	client        *http.Client
}

// QdrantOptions configures a QdrantWriter.
type QdrantOptions struct {
	Collection       string
	Dim              int
	Metric           string // "cosine", "l2" or "ip"
	APIKey           string
	Timeout          time.Duration
	DeterministicIDs bool
}

// NewQdrantWriter returns a Writer talking to the Qdrant instance at baseURL.
func NewQdrantWriter(baseURL string, opts QdrantOptions, log *logger.Logger) (*QdrantWriter, error) {
	metric, err := qdrantMetric(opts.Metric)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &QdrantWriter{
		log:           log,
		baseURL:       baseURL,
		apiKey:        opts.APIKey,
		collection:    opts.Collection,
		dim:           opts.Dim,
		metric:        metric,
		deterministic: opts.DeterministicIDs,
		client:        &http.Client{Timeout: timeout},
	}, nil
}

func qdrantMetric(metric string) (string, error) {
	switch metric {
	case "cosine", "":
		return "Cosine", nil
	case "l2":
		return "Euclid", nil
	case "ip":
		return "Dot", nil
	default:
		return "", fmt.Errorf("unsupported metric for Qdrant: %s", metric)
	}
}

// EnsureCollection creates the collection if it does not exist. Qdrant
// answers 404 for an unknown collection and 409 for a creation race; both
// are handled without surfacing an error.
func (w *QdrantWriter) EnsureCollection(ctx context.Context) error {
	status, err := w.do(ctx, http.MethodGet, w.collectionURL(), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d checking collection %s", status, w.collection)
	}

	w.log.Info(fmt.Sprintf("Creating Qdrant collection %s (dim=%d, metric=%s)", w.collection, w.dim, w.metric))
	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     w.dim,
			"distance": w.metric,
		},
	}
	status, err = w.do(ctx, http.MethodPut, w.collectionURL(), body, nil)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		// Lost a concurrent first-time creation race; the collection exists.
		return nil
	}
	if status >= 300 {
		return fmt.Errorf("failed to create collection %s: status %d", w.collection, status)
	}
	return nil
}

// Upsert writes the document's chunks as one batched points call.
func (w *QdrantWriter) Upsert(ctx context.Context, chunks []schema.Chunk, identity schema.Identity) error {
	if len(chunks) == 0 {
		return ErrEmptyBatch
	}

	ingestedAt := time.Now().UTC().Format(time.RFC3339)

	points := make([]map[string]interface{}, len(chunks))
	for i, chunk := range chunks {
		points[i] = map[string]interface{}{
			"id":     pointID(w.deterministic, identity, chunk.Index),
			"vector": chunk.Embedding,
			"payload": map[string]interface{}{
				schema.PayloadKeyDocID:       identity.DocID,
				schema.PayloadKeySourceFile:  identity.SourceFile,
				schema.PayloadKeyFileHash:    identity.FileHash,
				schema.PayloadKeyIngestedAt:  ingestedAt,
				schema.PayloadKeyChunkIndex:  chunk.Index,
				schema.PayloadKeyTotalChunks: chunk.TotalChunks,
				schema.PayloadKeyText:        chunk.Text,
			},
		}
	}

	w.log.Info(fmt.Sprintf("Upserting %d chunks into Qdrant collection %s", len(chunks), w.collection))
	status, err := w.do(ctx, http.MethodPut, w.collectionURL()+"/points?wait=true",
		map[string]interface{}{"points": points}, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("failed to upsert into Qdrant collection %s: status %d", w.collection, status)
	}
	return nil
}

// Ping verifies connectivity by listing collections.
func (w *QdrantWriter) Ping(ctx context.Context) error {
	status, err := w.do(ctx, http.MethodGet, w.baseURL+"/collections", nil, nil)
	if err != nil {
		return fmt.Errorf("qdrant ping failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant ping failed: status %d", status)
	}
	return nil
}

func (w *QdrantWriter) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", w.baseURL, w.collection)
}

func (w *QdrantWriter) do(ctx context.Context, method, url string, body, out interface{}) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal qdrant request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("api-key", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant %s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode qdrant response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// compile-time check to ensure QdrantWriter implements the Writer interface
var _ Writer = (*QdrantWriter)(nil)
