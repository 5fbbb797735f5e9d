// Package dense provides the dense (embedding) retrieval boundary and an
// in-memory brute-force implementation.
package dense

import (
	"context"

	"github.com/inkstone/quill/internal/models"
)

// Hit is a single dense retrieval hit. Distance is the raw distance reported
// by the vector store: non-negative, ascending-is-better. The engine derives
// similarity as 1.0 - Distance.
type Hit struct {
	ChunkID    string
	DocumentID string
	Content    string
	Metadata   models.ChunkMetadata
	Distance   float64
}

// Retriever is the vector-store collaborator boundary. Implementations return
// up to n hits ordered by ascending distance; a nil filter matches all
// chunks. Failures propagate unchanged to the caller.
type Retriever interface {
	Query(ctx context.Context, embedding []float32, filter *models.MetadataFilter, n int) ([]*Hit, error)
}
