// Package storage defines the persistence interface for corpus documents and
// chunks.
package storage

import (
	"context"

	"github.com/inkstone/quill/internal/models"
)

// Store defines document and chunk persistence operations. The engine only
// reads from here at snapshot build time; writes happen through ingest.
type Store interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error)

	// BatchCreateChunks inserts chunks (with embeddings) in one transaction.
	BatchCreateChunks(ctx context.Context, chunks []*models.Chunk) error
	// ListChunks returns every chunk with its owning document's metadata
	// attached, in document creation order then chunk index. This is the
	// snapshot builder's load path.
	ListChunks(ctx context.Context) ([]*models.Chunk, error)
	GetChunksByDocumentID(ctx context.Context, docID string) ([]*models.Chunk, error)
	DeleteChunksByDocumentID(ctx context.Context, docID string) error

	CountDocuments(ctx context.Context) (int64, error)
	CountChunks(ctx context.Context) (int64, error)

	Close() error
}
