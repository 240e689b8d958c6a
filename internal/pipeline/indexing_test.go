package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chuimeng/vecdex/internal/chunker"
	"github.com/chuimeng/vecdex/internal/parser"
	"github.com/chuimeng/vecdex/internal/schema"
	"github.com/chuimeng/vecdex/pkg/logger"
)

type fakeProvider struct {
	calls int
	err   error
}

func (f *fakeProvider) EmbedChunks(ctx context.Context, chunks []schema.Chunk) ([]schema.Chunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	embedded := make([]schema.Chunk, len(chunks))
	for i, chunk := range chunks {
		chunk.Embedding = []float32{1, 2, 3}
		chunk.EmbeddingModel = f.Model()
		chunk.EmbeddingDim = 3
		embedded[i] = chunk
	}
	return embedded, nil
}

func (f *fakeProvider) Model() string { return "fake" }

type fakeWriter struct {
	ensureCalls int
	ensureErr   error
	upsertErr   error

	gotChunks   []schema.Chunk
	gotIdentity schema.Identity
}

func (f *fakeWriter) EnsureCollection(ctx context.Context) error {
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeWriter) Upsert(ctx context.Context, chunks []schema.Chunk, identity schema.Identity) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.gotChunks = chunks
	f.gotIdentity = identity
	return nil
}

func (f *fakeWriter) Ping(ctx context.Context) error { return nil }

func newTestPipeline(t *testing.T, provider *fakeProvider, writer *fakeWriter) *IndexingPipeline {
	t.Helper()
	c, err := chunker.NewFixedChunker(50, 10)
	if err != nil {
		t.Fatal(err)
	}
	return NewIndexingPipeline(parser.NewTextParser(), c, provider, writer, logger.New("test"))
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunIngestsDocument(t *testing.T) {
	provider := &fakeProvider{}
	writer := &fakeWriter{}
	p := newTestPipeline(t, provider, writer)

	path := writeDoc(t, "doc.txt", strings.Repeat("some text ", 20))
	result, err := p.Run(context.Background(), path, "doc-1", "hash-1")
	if err != nil {
		t.Fatal(err)
	}

	if result.ChunkCount == 0 || result.ChunkCount != len(writer.gotChunks) {
		t.Errorf("ChunkCount = %d, upserted %d", result.ChunkCount, len(writer.gotChunks))
	}
	if writer.gotIdentity.DocID != "doc-1" || writer.gotIdentity.FileHash != "hash-1" {
		t.Errorf("identity = %+v", writer.gotIdentity)
	}
	if writer.gotIdentity.SourceFile != "doc.txt" {
		t.Errorf("SourceFile = %q, want doc.txt", writer.gotIdentity.SourceFile)
	}
	if writer.ensureCalls != 1 {
		t.Errorf("EnsureCollection called %d times, want 1", writer.ensureCalls)
	}
	for i, chunk := range writer.gotChunks {
		if len(chunk.Embedding) == 0 {
			t.Errorf("chunk %d reached the writer without an embedding", i)
		}
		if chunk.TotalChunks != len(writer.gotChunks) {
			t.Errorf("chunk %d: TotalChunks = %d, want %d", i, chunk.TotalChunks, len(writer.gotChunks))
		}
	}
}

func TestRunEmptyDocumentAbortsBeforeBackends(t *testing.T) {
	provider := &fakeProvider{}
	writer := &fakeWriter{}
	p := newTestPipeline(t, provider, writer)

	path := writeDoc(t, "empty.txt", "   \n\n  ")
	_, err := p.Run(context.Background(), path, "doc-1", "hash-1")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("error = %v, want ErrEmptyDocument", err)
	}

	if provider.calls != 0 {
		t.Errorf("embedder called %d times for an empty document", provider.calls)
	}
	if writer.ensureCalls != 0 {
		t.Errorf("EnsureCollection called %d times for an empty document", writer.ensureCalls)
	}
}

func TestRunUnsupportedFileType(t *testing.T) {
	p := newTestPipeline(t, &fakeProvider{}, &fakeWriter{})

	path := writeDoc(t, "img.png", "not text")
	_, err := p.Run(context.Background(), path, "doc-1", "hash-1")
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestRunPropagatesStageErrors(t *testing.T) {
	embedErr := errors.New("embed failed")
	ensureErr := errors.New("store down")

	t.Run("embed stage", func(t *testing.T) {
		p := newTestPipeline(t, &fakeProvider{err: embedErr}, &fakeWriter{})
		path := writeDoc(t, "doc.txt", "enough text to chunk")
		_, err := p.Run(context.Background(), path, "doc-1", "hash-1")
		if !errors.Is(err, embedErr) {
			t.Fatalf("error = %v, want wrapped %v", err, embedErr)
		}
		if !strings.Contains(err.Error(), "doc-1") {
			t.Errorf("error lacks doc_id context: %v", err)
		}
	})

	t.Run("ensure stage", func(t *testing.T) {
		p := newTestPipeline(t, &fakeProvider{}, &fakeWriter{ensureErr: ensureErr})
		path := writeDoc(t, "doc.txt", "enough text to chunk")
		_, err := p.Run(context.Background(), path, "doc-1", "hash-1")
		if !errors.Is(err, ensureErr) {
			t.Fatalf("error = %v, want wrapped %v", err, ensureErr)
		}
	})
}
