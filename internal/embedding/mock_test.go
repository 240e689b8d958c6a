package embedding

import (
	"context"
	"testing"
)

func TestMockBackendDeterministic(t *testing.T) {
	b := NewMockBackend(16)

	first, err := b.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Embed(context.Background(), "same text")
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 16 {
		t.Fatalf("vector length = %d, want 16", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("vectors differ at %d for identical text", i)
		}
	}

	other, err := b.Embed(context.Background(), "different text")
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical vectors")
	}
}

func TestMockBackendBatch(t *testing.T) {
	b := NewMockBackend(8)

	vectors, err := b.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != 8 {
			t.Errorf("vector %d length = %d, want 8", i, len(vec))
		}
	}
}
