package lexical

import (
	"fmt"
	"testing"

	"github.com/inkstone/quill/internal/models"
)

func buildTestIndex(t *testing.T, contents ...string) *MemoryIndex {
	t.Helper()
	chunks := make([]*models.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = &models.Chunk{
			ID:         fmt.Sprintf("c%d", i),
			DocumentID: fmt.Sprintf("d%d", i),
			Content:    c,
		}
	}
	idx := NewMemoryIndex()
	if err := idx.Build(chunks); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestMemoryIndexSearchRanksMatches(t *testing.T) {
	idx := buildTestIndex(t,
		"the raft consensus algorithm elects a leader",
		"raft raft raft everywhere",
		"cooking pasta with tomato sauce",
	)
	results, err := idx.Search("raft", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ChunkID != "c1" {
		t.Errorf("top result = %s, want c1 (highest term frequency)", results[0].ChunkID)
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("result %s has non-positive score %v", r.ChunkID, r.Score)
		}
	}
}

func TestMemoryIndexSearchEmpty(t *testing.T) {
	idx := NewMemoryIndex()
	results, err := idx.Search("anything", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty index returned %d results", len(results))
	}
}

func TestMemoryIndexSearchNoMatch(t *testing.T) {
	idx := buildTestIndex(t, "alpha beta", "gamma delta")
	results, err := idx.Search("omega", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for absent term", len(results))
	}
}

func TestMemoryIndexRebuildIsIdempotent(t *testing.T) {
	chunks := []*models.Chunk{
		{ID: "a", Content: "shared term here"},
		{ID: "b", Content: "shared term also here twice shared"},
	}
	idx := NewMemoryIndex()
	if err := idx.Build(chunks); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	first, _ := idx.Search("shared", 10)
	if err := idx.Build(chunks); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	second, _ := idx.Search("shared", 10)
	if len(first) != len(second) {
		t.Fatalf("result count changed across rebuild: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ChunkID != second[i].ChunkID || first[i].Score != second[i].Score {
			t.Errorf("result %d changed across rebuild: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMemoryIndexTieBreakByInsertionOrder(t *testing.T) {
	// Identical content scores identically; order must follow build order.
	idx := buildTestIndex(t, "same words here", "same words here", "same words here")
	results, err := idx.Search("same words", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"c0", "c1", "c2"} {
		if results[i].ChunkID != want {
			t.Errorf("result %d = %s, want %s", i, results[i].ChunkID, want)
		}
	}
}

func TestMemoryIndexLimit(t *testing.T) {
	idx := buildTestIndex(t, "term a", "term b", "term c", "term d")
	results, _ := idx.Search("term", 2)
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestMemoryIndexLen(t *testing.T) {
	idx := buildTestIndex(t, "one", "two", "three")
	if idx.Len() != 3 {
		t.Errorf("Len = %d, want 3", idx.Len())
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"go1.24 is-out", []string{"go1", "24", "is", "out"}},
		{"", nil},
		{"...", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNewIndexFactory(t *testing.T) {
	for _, typ := range []string{"memory", "bleve", ""} {
		idx, err := NewIndex(typ)
		if err != nil {
			t.Fatalf("NewIndex(%q) failed: %v", typ, err)
		}
		if idx == nil {
			t.Fatalf("NewIndex(%q) returned nil", typ)
		}
		_ = idx.Close()
	}
	if _, err := NewIndex("faiss"); err == nil {
		t.Error("expected error for unknown index type")
	}
}
