package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHuggingFaceEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Inputs []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}

		vectors := make([][]float32, len(payload.Inputs))
		for i := range payload.Inputs {
			vectors[i] = []float32{float32(i), 1}
		}
		_ = json.NewEncoder(w).Encode(vectors)
	}))
	defer srv.Close()

	b := NewHuggingFaceBackend("", "some-model", srv.URL+"/")
	vectors, err := b.EmbedBatch(context.Background(), []string{"one", "two", "three"})
	if err != nil {
		t.Fatal(err)
	}

	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	for i, vec := range vectors {
		if vec[0] != float32(i) {
			t.Errorf("vector %d out of order: %v", i, vec)
		}
	}
}

func TestHuggingFaceServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := NewHuggingFaceBackend("", "some-model", srv.URL+"/")
	_, err := b.EmbedBatch(context.Background(), []string{"text"})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestHuggingFaceMalformedResponse(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"wrong shape",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error": "not a vector list"}`))
			},
		},
		{
			"count mismatch",
			func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([][]float32{{1, 2}})
			},
		},
		{
			"client error status",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			b := NewHuggingFaceBackend("", "some-model", srv.URL+"/")
			_, err := b.EmbedBatch(context.Background(), []string{"a", "b"})
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestHuggingFaceUnreachableBackend(t *testing.T) {
	b := NewHuggingFaceBackend("", "some-model", "http://127.0.0.1:1/")
	_, err := b.EmbedBatch(context.Background(), []string{"text"})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("error = %v, want ErrBackendUnavailable", err)
	}
}
