package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/"

// HuggingFaceBackend generates embeddings with the Hugging Face Inference
// API feature-extraction pipeline. There is no official Go SDK for it, so
// this client speaks the JSON protocol directly.
type HuggingFaceBackend struct {
	client  *http.Client
	model   string
	apiKey  string
	baseURL string
}

// NewHuggingFaceBackend creates a client for the Inference API, defaulting
// to the public endpoint when baseURL is empty.
func NewHuggingFaceBackend(apiKey, model, baseURL string) *HuggingFaceBackend {
	if baseURL == "" {
		baseURL = defaultHuggingFaceBaseURL
	}
	return &HuggingFaceBackend{
		client:  &http.Client{Timeout: 120 * time.Second},
		model:   model,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// Embed generates an embedding vector for a single text.
func (b *HuggingFaceBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := b.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding vector per text with a single request.
func (b *HuggingFaceBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	payload := map[string]interface{}{
		"inputs":  texts,
		"options": map[string]bool{"wait_for_model": true},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal huggingface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+b.model, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create huggingface request: %w", err)
	}
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface request failed: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: huggingface returned status %s", ErrBackendUnavailable, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: huggingface returned status %s: %s", ErrMalformedResponse, resp.Status, body)
	}

	var embeddings [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&embeddings); err != nil {
		return nil, fmt.Errorf("%w: failed to decode huggingface response: %v", ErrMalformedResponse, err)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: huggingface returned %d embeddings for %d texts",
			ErrMalformedResponse, len(embeddings), len(texts))
	}

	return embeddings, nil
}

// Model returns the Hugging Face model name.
func (b *HuggingFaceBackend) Model() string { return b.model }

var _ Backend = (*HuggingFaceBackend)(nil)
