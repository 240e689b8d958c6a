package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/chuimeng/vecdex/internal/schema"
	"github.com/chuimeng/vecdex/pkg/logger"
)

// fakeQdrant simulates the subset of the Qdrant REST API the writer uses.
type fakeQdrant struct {
	mu          sync.Mutex
	collections map[string]bool
	creates     int
	lastUpsert  map[string]interface{}
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{collections: map[string]bool{}}
}

func (f *fakeQdrant) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/collections", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/collections/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		name := r.URL.Path[len("/collections/"):]
		switch {
		case r.Method == http.MethodGet:
			if f.collections[name] {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusNotFound)
			}
		case r.Method == http.MethodPut && name == "documents":
			f.creates++
			f.collections[name] = true
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && name == "documents/points":
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.lastUpsert = body
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return mux
}

func newTestQdrantWriter(t *testing.T, url string) *QdrantWriter {
	t.Helper()
	w, err := NewQdrantWriter(url, QdrantOptions{
		Collection:       "documents",
		Dim:              4,
		Metric:           "cosine",
		DeterministicIDs: true,
	}, logger.New("test"))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestQdrantEnsureCollectionCreatesOnce(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	w := newTestQdrantWriter(t, srv.URL)
	ctx := context.Background()

	if err := w.EnsureCollection(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.EnsureCollection(ctx); err != nil {
		t.Fatalf("second EnsureCollection failed: %v", err)
	}

	if fake.creates != 1 {
		t.Errorf("collection created %d times, want exactly 1", fake.creates)
	}
}

func TestQdrantUpsertPayload(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	w := newTestQdrantWriter(t, srv.URL)
	identity := schema.Identity{DocID: "doc-1", SourceFile: "report.pdf", FileHash: "deadbeef"}
	chunks := []schema.Chunk{
		{Index: 0, Text: "first", TotalChunks: 2, Embedding: []float32{1, 2, 3, 4}},
		{Index: 1, Text: "second", TotalChunks: 2, Embedding: []float32{5, 6, 7, 8}},
	}

	if err := w.Upsert(context.Background(), chunks, identity); err != nil {
		t.Fatal(err)
	}

	points, ok := fake.lastUpsert["points"].([]interface{})
	if !ok || len(points) != 2 {
		t.Fatalf("upsert sent %d points, want 2", len(points))
	}

	first := points[0].(map[string]interface{})
	payload := first["payload"].(map[string]interface{})
	want := map[string]interface{}{
		schema.PayloadKeyDocID:      "doc-1",
		schema.PayloadKeySourceFile: "report.pdf",
		schema.PayloadKeyFileHash:   "deadbeef",
		schema.PayloadKeyText:       "first",
	}
	for key, value := range want {
		if payload[key] != value {
			t.Errorf("payload[%s] = %v, want %v", key, payload[key], value)
		}
	}
	if payload[schema.PayloadKeyChunkIndex] != float64(0) {
		t.Errorf("payload[chunk_index] = %v, want 0", payload[schema.PayloadKeyChunkIndex])
	}
	if payload[schema.PayloadKeyTotalChunks] != float64(2) {
		t.Errorf("payload[total_chunks] = %v, want 2", payload[schema.PayloadKeyTotalChunks])
	}
	if payload[schema.PayloadKeyIngestedAt] == "" || payload[schema.PayloadKeyIngestedAt] == nil {
		t.Error("payload[ingested_at] missing")
	}

	second := points[1].(map[string]interface{})
	secondPayload := second["payload"].(map[string]interface{})
	if payload[schema.PayloadKeyIngestedAt] != secondPayload[schema.PayloadKeyIngestedAt] {
		t.Error("chunks of one batch carry different ingestion timestamps")
	}
	if first["id"] == second["id"] {
		t.Error("both points share the same ID")
	}
}

func TestQdrantUpsertEmptyBatch(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	w := newTestQdrantWriter(t, srv.URL)
	err := w.Upsert(context.Background(), nil, schema.Identity{DocID: "doc-1"})
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("error = %v, want ErrEmptyBatch", err)
	}
}

func TestQdrantUpsertDeterministicIDsStable(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	w := newTestQdrantWriter(t, srv.URL)
	identity := schema.Identity{DocID: "doc-1", SourceFile: "a.txt", FileHash: "cafe"}
	chunks := []schema.Chunk{{Index: 0, Text: "only", TotalChunks: 1, Embedding: []float32{1, 2, 3, 4}}}

	if err := w.Upsert(context.Background(), chunks, identity); err != nil {
		t.Fatal(err)
	}
	firstID := fake.lastUpsert["points"].([]interface{})[0].(map[string]interface{})["id"]

	if err := w.Upsert(context.Background(), chunks, identity); err != nil {
		t.Fatal(err)
	}
	secondID := fake.lastUpsert["points"].([]interface{})[0].(map[string]interface{})["id"]

	if firstID != secondID {
		t.Errorf("re-ingestion produced a new point ID: %v vs %v", firstID, secondID)
	}
}
