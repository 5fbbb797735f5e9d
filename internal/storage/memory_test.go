package storage

import (
	"context"
	"testing"

	"github.com/inkstone/quill/internal/models"
)

func TestMemoryStore_DocumentCRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := &models.Document{ID: "doc1", Title: "Title", Content: "content"}
	if err := store.CreateDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := store.GetDocument(ctx, "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Title" {
		t.Errorf("title = %q", got.Title)
	}
	if _, err := store.GetDocument(ctx, "missing"); err == nil {
		t.Error("expected error for missing document")
	}

	if err := store.DeleteDocument(ctx, "doc1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetDocument(ctx, "doc1"); err == nil {
		t.Error("expected error after delete")
	}
	n, _ := store.CountDocuments(ctx)
	if n != 0 {
		t.Errorf("CountDocuments = %d, want 0", n)
	}
}

func TestMemoryStore_ListDocumentsPagination(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.CreateDocument(ctx, &models.Document{ID: id, Content: id}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := store.ListDocuments(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].ID != "b" {
		t.Errorf("page = %+v, want [b]", page)
	}

	all, err := store.ListDocuments(ctx, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Errorf("unexpected creation order: %+v", all)
	}

	empty, err := store.ListDocuments(ctx, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(empty))
	}
}

func TestMemoryStore_ListChunksOrderAndMetadata(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	docA := &models.Document{
		ID: "a", Content: "a",
		Metadata: models.ChunkMetadata{Quality: models.QualityPreferred},
	}
	docB := &models.Document{ID: "b", Content: "b"}
	for _, d := range []*models.Document{docA, docB} {
		if err := store.CreateDocument(ctx, d); err != nil {
			t.Fatal(err)
		}
	}
	chunks := []*models.Chunk{
		{ID: "b_0000", DocumentID: "b", Content: "b0", ChunkIndex: 0},
		{ID: "a_0001", DocumentID: "a", Content: "a1", ChunkIndex: 1},
		{ID: "a_0000", DocumentID: "a", Content: "a0", ChunkIndex: 0},
	}
	if err := store.BatchCreateChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	got, err := store.ListChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []string{"a_0000", "a_0001", "b_0000"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d chunks, got %d", len(wantIDs), len(got))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("chunk[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
	if got[0].Metadata.Quality != models.QualityPreferred {
		t.Errorf("chunk metadata not attached from document: %+v", got[0].Metadata)
	}
}

func TestMemoryStore_DeleteChunksByDocumentID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.CreateDocument(ctx, &models.Document{ID: "a", Content: "a"}); err != nil {
		t.Fatal(err)
	}
	err := store.BatchCreateChunks(ctx, []*models.Chunk{
		{ID: "a_0000", DocumentID: "a", ChunkIndex: 0},
		{ID: "a_0001", DocumentID: "a", ChunkIndex: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteChunksByDocumentID(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	n, _ := store.CountChunks(ctx)
	if n != 0 {
		t.Errorf("CountChunks = %d, want 0", n)
	}
	cs, _ := store.GetChunksByDocumentID(ctx, "a")
	if len(cs) != 0 {
		t.Errorf("expected no chunks, got %d", len(cs))
	}
}
