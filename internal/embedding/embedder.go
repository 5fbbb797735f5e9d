// Package embedding defines the embedding collaborator boundary and client
// implementations. The engine never computes embeddings itself; callers
// construct one Embedder and inject it into every component that needs it.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations must be
// deterministic for identical input within a session, and EmbedBatch must
// return vectors in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
