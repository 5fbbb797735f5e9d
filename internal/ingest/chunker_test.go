package ingest

import (
	"strings"
	"testing"

	"github.com/inkstone/quill/internal/models"
)

func TestChunkerChunk(t *testing.T) {
	c := NewChunker(3, 1)
	meta := models.ChunkMetadata{Quality: models.QualityReference}
	chunks := c.Chunk("doc1", "one two three four five six seven", meta)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.DocumentID != "doc1" {
			t.Errorf("chunk %d DocumentID = %s", i, ch.DocumentID)
		}
		if ch.ChunkIndex != i {
			t.Errorf("chunk %d ChunkIndex = %d", i, ch.ChunkIndex)
		}
		if ch.ID == "" {
			t.Error("chunk ID should be set")
		}
		if ch.Metadata.Quality != models.QualityReference {
			t.Errorf("chunk %d metadata not carried", i)
		}
	}
}

func TestChunkerOverlap(t *testing.T) {
	c := NewChunker(4, 2)
	chunks := c.Chunk("d", "a b c d e f", models.ChunkMetadata{})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Content != "a b c d" {
		t.Errorf("chunk 0 = %q", chunks[0].Content)
	}
	if chunks[1].Content != "c d e f" {
		t.Errorf("chunk 1 = %q, want overlap of 2 words", chunks[1].Content)
	}
}

func TestChunkerDeterministicIDs(t *testing.T) {
	c := NewChunker(3, 1)
	first := c.Chunk("doc1", "one two three four five", models.ChunkMetadata{})
	second := c.Chunk("doc1", "one two three four five", models.ChunkMetadata{})
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID changed across runs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	if !strings.HasPrefix(first[0].ID, "doc1_") {
		t.Errorf("chunk ID %s not derived from document ID", first[0].ID)
	}
}

func TestChunkerEmpty(t *testing.T) {
	c := NewChunker(5, 1)
	if chunks := c.Chunk("d", "   \n\t  ", models.ChunkMetadata{}); chunks != nil {
		t.Errorf("empty text should return nil, got %v", chunks)
	}
}

func TestChunkerOverlapAtLeastOneStep(t *testing.T) {
	// Overlap >= size must still make forward progress.
	c := NewChunker(2, 5)
	chunks := c.Chunk("d", "a b c d", models.ChunkMetadata{})
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	if len(chunks) > 4 {
		t.Errorf("got %d chunks, expected at most one per word", len(chunks))
	}
}

func TestPreprocess(t *testing.T) {
	if got := Preprocess("  a \n\t b  "); got != "a b" {
		t.Errorf("Preprocess = %q, want %q", got, "a b")
	}
	if got := Preprocess(""); got != "" {
		t.Errorf("Preprocess empty = %q", got)
	}
}
