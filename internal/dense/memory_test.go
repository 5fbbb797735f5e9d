package dense

import (
	"context"
	"math"
	"testing"

	"github.com/inkstone/quill/internal/models"
)

func testChunk(id string, embedding []float32) *models.Chunk {
	return &models.Chunk{ID: id, DocumentID: "doc-" + id, Content: "content " + id, Embedding: embedding}
}

func TestNewMemoryStoreRejectsBadDimensions(t *testing.T) {
	for _, d := range []int{0, -1} {
		if _, err := NewMemoryStore(d); err == nil {
			t.Errorf("NewMemoryStore(%d) should fail", d)
		}
	}
}

func TestMemoryStoreBuildRejectsWrongDimension(t *testing.T) {
	store, err := NewMemoryStore(3)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	err = store.Build([]*models.Chunk{testChunk("a", []float32{1, 0})})
	if err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestMemoryStoreQueryOrdersByDistance(t *testing.T) {
	store, err := NewMemoryStore(2)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	chunks := []*models.Chunk{
		testChunk("orthogonal", []float32{0, 1}),
		testChunk("aligned", []float32{1, 0}),
		testChunk("diagonal", []float32{float32(math.Sqrt2 / 2), float32(math.Sqrt2 / 2)}),
	}
	if err := store.Build(chunks); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	hits, err := store.Query(context.Background(), []float32{1, 0}, nil, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	for i, want := range []string{"aligned", "diagonal", "orthogonal"} {
		if hits[i].ChunkID != want {
			t.Errorf("hit %d = %s, want %s", i, hits[i].ChunkID, want)
		}
	}
	if math.Abs(hits[0].Distance) > 1e-6 {
		t.Errorf("aligned distance = %v, want ~0", hits[0].Distance)
	}
	if math.Abs(hits[2].Distance-1.0) > 1e-6 {
		t.Errorf("orthogonal distance = %v, want ~1", hits[2].Distance)
	}
}

func TestMemoryStoreQueryAppliesFilterBeforeRanking(t *testing.T) {
	store, _ := NewMemoryStore(2)
	near := testChunk("near", []float32{1, 0})
	near.Metadata.Quality = models.QualityDeprecated
	far := testChunk("far", []float32{0, 1})
	far.Metadata.Quality = models.QualityPreferred
	if err := store.Build([]*models.Chunk{near, far}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	filter := &models.MetadataFilter{Quality: models.QualityPreferred}
	hits, err := store.Query(context.Background(), []float32{1, 0}, filter, 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ChunkID != "far" {
		t.Errorf("expected the only matching chunk, got %+v", hits)
	}
}

func TestMemoryStoreQueryDimensionMismatch(t *testing.T) {
	store, _ := NewMemoryStore(3)
	if _, err := store.Query(context.Background(), []float32{1, 0}, nil, 5); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestMemoryStoreQueryEmpty(t *testing.T) {
	store, _ := NewMemoryStore(2)
	hits, err := store.Query(context.Background(), []float32{1, 0}, nil, 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("empty store returned %d hits", len(hits))
	}
}

func TestMemoryStoreSize(t *testing.T) {
	store, _ := NewMemoryStore(1)
	if err := store.Build([]*models.Chunk{testChunk("a", []float32{1}), testChunk("b", []float32{1})}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if store.Size() != 2 {
		t.Errorf("Size = %d, want 2", store.Size())
	}
}
