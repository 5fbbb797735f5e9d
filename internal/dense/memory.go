package dense

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkstone/quill/internal/models"
)

// MemoryStore is an in-memory brute-force vector store. Cosine distance over
// unit-normalized vectors; suitable for personal corpora and tests. Build is
// the only mutating operation; the chunk set is swapped in atomically so
// concurrent queries never see a partial build.
type MemoryStore struct {
	dimensions int
	mu         sync.RWMutex
	chunks     []*models.Chunk
}

// NewMemoryStore creates a store for vectors of the given dimension.
func NewMemoryStore(dimensions int) (*MemoryStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryStore{dimensions: dimensions}, nil
}

// Build replaces the store contents with the given chunk set. Chunks without
// an embedding of the expected dimension are rejected.
func (m *MemoryStore) Build(chunks []*models.Chunk) error {
	for _, c := range chunks {
		if len(c.Embedding) != m.dimensions {
			return fmt.Errorf("chunk %s: embedding dimension %d, expected %d", c.ID, len(c.Embedding), m.dimensions)
		}
	}
	snapshot := make([]*models.Chunk, len(chunks))
	copy(snapshot, chunks)

	m.mu.Lock()
	m.chunks = snapshot
	m.mu.Unlock()
	return nil
}

// Query returns up to n hits by ascending cosine distance. The filter is
// applied before ranking, so the caller always gets the n closest chunks
// among those that match.
func (m *MemoryStore) Query(ctx context.Context, embedding []float32, filter *models.MetadataFilter, n int) ([]*Hit, error) {
	if len(embedding) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(embedding), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || len(m.chunks) == 0 {
		return nil, nil
	}
	hits := make([]*Hit, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		if !filter.Matches(chunk.Metadata) {
			continue
		}
		var dot float64
		for i := 0; i < m.dimensions; i++ {
			dot += float64(embedding[i] * chunk.Embedding[i])
		}
		hits = append(hits, &Hit{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Content:    chunk.Content,
			Metadata:   chunk.Metadata,
			Distance:   1.0 - dot,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if n > len(hits) {
		n = len(hits)
	}
	return hits[:n], nil
}

// Size returns the number of stored chunks.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}
