package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/inkstone/quill/internal/models"
)

// MemoryStore is an in-memory Store for tests and ephemeral corpora. Data
// does not survive process exit.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]*models.Document
	chunks    map[string][]*models.Chunk // by document ID
	order     []string                   // document IDs in creation order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]*models.Document),
		chunks:    make(map[string][]*models.Chunk),
	}
}

// CreateDocument stores a document, replacing any existing one with the
// same ID.
func (m *MemoryStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, exists := m.documents[doc.ID]; !exists {
		m.order = append(m.order, doc.ID)
	}
	m.documents[doc.ID] = doc
	return nil
}

// GetDocument returns a document by ID.
func (m *MemoryStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}

// DeleteDocument removes a document and its chunks.
func (m *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.documents, id)
	delete(m.chunks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListDocuments returns documents in creation order.
func (m *MemoryStore) ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset >= len(m.order) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(m.order) {
		end = len(m.order)
	}
	out := make([]*models.Document, 0, end-offset)
	for _, id := range m.order[offset:end] {
		out = append(out, m.documents[id])
	}
	return out, nil
}

// BatchCreateChunks appends chunks grouped under their document IDs.
func (m *MemoryStore) BatchCreateChunks(ctx context.Context, chunks []*models.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range chunks {
		m.chunks[c.DocumentID] = append(m.chunks[c.DocumentID], c)
	}
	return nil
}

// ListChunks returns every chunk in document creation order then chunk
// index, with the owning document's metadata attached.
func (m *MemoryStore) ListChunks(ctx context.Context) ([]*models.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Chunk
	for _, docID := range m.order {
		cs := append([]*models.Chunk(nil), m.chunks[docID]...)
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].ChunkIndex < cs[j].ChunkIndex })
		meta := models.ChunkMetadata{}
		if doc, ok := m.documents[docID]; ok {
			meta = doc.Metadata
		}
		for _, c := range cs {
			c.Metadata = meta
			out = append(out, c)
		}
	}
	return out, nil
}

// GetChunksByDocumentID returns a document's chunks sorted by chunk index.
func (m *MemoryStore) GetChunksByDocumentID(ctx context.Context, docID string) ([]*models.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cs := append([]*models.Chunk(nil), m.chunks[docID]...)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].ChunkIndex < cs[j].ChunkIndex })
	return cs, nil
}

// DeleteChunksByDocumentID removes a document's chunks.
func (m *MemoryStore) DeleteChunksByDocumentID(ctx context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chunks, docID)
	return nil
}

// CountDocuments returns the number of stored documents.
func (m *MemoryStore) CountDocuments(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.documents)), nil
}

// CountChunks returns the number of stored chunks.
func (m *MemoryStore) CountChunks(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, cs := range m.chunks {
		n += int64(len(cs))
	}
	return n, nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}
