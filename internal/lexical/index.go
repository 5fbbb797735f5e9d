// Package lexical provides sparse (term-frequency) indexing and BM25 scoring
// over corpus chunks.
package lexical

import (
	"fmt"

	"github.com/inkstone/quill/internal/models"
)

// Result is a single lexical search hit.
type Result struct {
	ChunkID string
	Score   float64
}

// Searcher is the read side of a lexical index.
type Searcher interface {
	Search(query string, n int) ([]*Result, error)
}

// Index defines lexical search over a corpus snapshot. Build is the only
// mutating operation and must complete before Search is called; rebuilding
// with the same chunk set yields identical term statistics.
type Index interface {
	Searcher
	Build(chunks []*models.Chunk) error
	Len() int
	Close() error
}

// IndexType selects the lexical index implementation.
type IndexType string

const (
	// IndexTypeMemory is the in-memory BM25 index. Default.
	IndexTypeMemory IndexType = "memory"
	// IndexTypeBleve uses a Bleve memory-only index. Useful for larger
	// corpora where Bleve's segment structures outperform the flat index.
	IndexTypeBleve IndexType = "bleve"
)

// NewIndex creates a lexical index of the given type ("memory" when empty).
func NewIndex(indexType string) (Index, error) {
	switch IndexType(indexType) {
	case IndexTypeMemory, "":
		return NewMemoryIndex(), nil
	case IndexTypeBleve:
		return NewBleveIndex()
	default:
		return nil, fmt.Errorf("unknown lexical index type: %s (supported: memory, bleve)", indexType)
	}
}
