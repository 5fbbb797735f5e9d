package ingest

import (
	"context"
	"testing"

	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/embedding"
	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/internal/storage"
)

func newTestIngestor(t *testing.T) (*Ingestor, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	embedder := embedding.NewMockEmbedder(32)
	cfg := &config.RetrievalConfig{ChunkSize: 4, ChunkOverlap: 1}
	return NewIngestor(store, embedder, cfg), store
}

func TestIngestDocumentStoresChunksWithEmbeddings(t *testing.T) {
	in, store := newTestIngestor(t)
	ctx := context.Background()

	doc, err := in.IngestDocument(ctx, &models.DocumentInput{
		Title:   "Notes",
		Content: "alpha beta gamma delta epsilon zeta eta theta",
	})
	if err != nil {
		t.Fatalf("IngestDocument failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("document ID not assigned")
	}
	if doc.Metadata.Quality != models.QualityReference {
		t.Errorf("quality = %s, want reference default", doc.Metadata.Quality)
	}

	chunks, err := store.GetChunksByDocumentID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetChunksByDocumentID failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Embedding) != 32 {
			t.Errorf("chunk %d embedding dims = %d, want 32", i, len(c.Embedding))
		}
		if c.ChunkIndex != i {
			t.Errorf("chunk %d index = %d", i, c.ChunkIndex)
		}
	}
}

func TestIngestDocumentEmptyContent(t *testing.T) {
	in, _ := newTestIngestor(t)
	if _, err := in.IngestDocument(context.Background(), &models.DocumentInput{Title: "x"}); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestIngestDocumentInvalidQuality(t *testing.T) {
	in, _ := newTestIngestor(t)
	_, err := in.IngestDocument(context.Background(), &models.DocumentInput{
		Content:  "some text",
		Metadata: models.ChunkMetadata{Quality: "amazing"},
	})
	if err == nil {
		t.Error("expected error for invalid quality rating")
	}
}

func TestIngestDocumentReplacesPreviousChunks(t *testing.T) {
	in, store := newTestIngestor(t)
	ctx := context.Background()

	doc, err := in.IngestDocument(ctx, &models.DocumentInput{ID: "fixed", Content: "one two three four five six"})
	if err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if _, err := in.IngestDocument(ctx, &models.DocumentInput{ID: "fixed", Content: "short"}); err != nil {
		t.Fatalf("re-ingest failed: %v", err)
	}
	chunks, _ := store.GetChunksByDocumentID(ctx, doc.ID)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks after re-ingest, want 1", len(chunks))
	}
	if chunks[0].Content != "short" {
		t.Errorf("chunk content = %q, want replaced text", chunks[0].Content)
	}
}

func TestIngestDocumentNormalizesWhitespace(t *testing.T) {
	in, store := newTestIngestor(t)
	ctx := context.Background()
	doc, err := in.IngestDocument(ctx, &models.DocumentInput{Content: "  spaced \n\n out   text  "})
	if err != nil {
		t.Fatalf("IngestDocument failed: %v", err)
	}
	stored, _ := store.GetDocument(ctx, doc.ID)
	if stored.Content != "spaced out text" {
		t.Errorf("content = %q, want normalized", stored.Content)
	}
}

func TestDeleteDocument(t *testing.T) {
	in, store := newTestIngestor(t)
	ctx := context.Background()
	doc, err := in.IngestDocument(ctx, &models.DocumentInput{Content: "to be removed"})
	if err != nil {
		t.Fatalf("IngestDocument failed: %v", err)
	}
	if err := in.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := store.GetDocument(ctx, doc.ID); err == nil {
		t.Error("document still present after delete")
	}
	chunks, _ := store.GetChunksByDocumentID(ctx, doc.ID)
	if len(chunks) != 0 {
		t.Errorf("%d chunks left after delete", len(chunks))
	}
}
