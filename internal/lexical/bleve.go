package lexical

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/inkstone/quill/internal/models"
)

// BleveIndex implements Index using a Bleve memory-only index. Each Build
// creates a fresh index and publishes it atomically, so readers during a
// rebuild keep seeing the previous snapshot.
type BleveIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	count int
}

// bleveChunk is the shape Bleve indexes per chunk.
type bleveChunk struct {
	Content string `json:"content"`
}

// NewBleveIndex creates an empty Bleve-backed lexical index.
func NewBleveIndex() (*BleveIndex, error) {
	idx, err := newMemOnly()
	if err != nil {
		return nil, err
	}
	return &BleveIndex{index: idx}, nil
}

func newMemOnly() (bleve.Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) keeps query terms
	// matching exact corpus words.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return idx, nil
}

// Build indexes the chunk set into a fresh index and swaps it in.
func (b *BleveIndex) Build(chunks []*models.Chunk) error {
	idx, err := newMemOnly()
	if err != nil {
		return err
	}
	batch := idx.NewBatch()
	for _, chunk := range chunks {
		if err := batch.Index(chunk.ID, bleveChunk{Content: chunk.Content}); err != nil {
			return fmt.Errorf("failed to index chunk %s: %w", chunk.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("failed to commit index batch: %w", err)
	}

	// The displaced index is left to the garbage collector: a concurrent
	// Search may have loaded it before the swap and closing it underneath
	// that reader would fail the query.
	b.mu.Lock()
	b.index = idx
	b.count = len(chunks)
	b.mu.Unlock()
	return nil
}

// Search runs a match query and returns up to n hits by score descending.
func (b *BleveIndex) Search(query string, n int) ([]*Result, error) {
	b.mu.RLock()
	idx := b.index
	count := b.count
	b.mu.RUnlock()

	if n <= 0 || count == 0 {
		return nil, nil
	}
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = n
	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}
	out := make([]*Result, len(res.Hits))
	for i, hit := range res.Hits {
		out[i] = &Result{ChunkID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Len returns the number of indexed chunks.
func (b *BleveIndex) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Close releases the underlying index.
func (b *BleveIndex) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	return err
}
