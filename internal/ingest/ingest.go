// Package ingest turns source documents into embedded corpus chunks.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/embedding"
	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/internal/storage"
)

// Ingestor chunks, embeds, and persists documents.
type Ingestor struct {
	store    storage.Store
	embedder embedding.Embedder
	chunker  *Chunker
	logger   *zap.Logger // optional; when set, logs debug events
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor)

// WithLogger sets a logger for debug output (document ingested, deleted, etc.).
func WithLogger(l *zap.Logger) IngestorOption {
	return func(in *Ingestor) { in.logger = l }
}

// NewIngestor creates an ingestor with the given dependencies.
func NewIngestor(store storage.Store, embedder embedding.Embedder, cfg *config.RetrievalConfig, opts ...IngestorOption) *Ingestor {
	in := &Ingestor{
		store:    store,
		embedder: embedder,
		chunker:  NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// IngestDocument stores a document, chunks its content, embeds every chunk in
// one batch, and persists the chunks. Re-ingesting an existing document ID
// replaces its previous chunks.
func (in *Ingestor) IngestDocument(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("document content is empty")
	}
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	if input.Metadata.Quality == "" {
		input.Metadata.Quality = models.QualityReference
	}
	if !input.Metadata.Quality.Valid() {
		return nil, fmt.Errorf("invalid quality rating: %q", input.Metadata.Quality)
	}
	doc := &models.Document{
		ID:       input.ID,
		Title:    input.Title,
		Content:  Preprocess(input.Content),
		Metadata: input.Metadata,
	}
	if err := in.store.DeleteChunksByDocumentID(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("failed to clear previous chunks: %w", err)
	}
	if err := in.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	chunks := in.chunker.Chunk(doc.ID, doc.Content, doc.Metadata)
	if len(chunks) == 0 {
		chunks = []*models.Chunk{{
			ID:         doc.ID + "_0000",
			DocumentID: doc.ID,
			Content:    doc.Content,
			ChunkIndex: 0,
			Metadata:   doc.Metadata,
		}}
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	embeddings, err := in.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	if err := in.store.BatchCreateChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("failed to store chunks: %w", err)
	}
	if in.logger != nil {
		in.logger.Debug("document ingested",
			zap.String("id", doc.ID),
			zap.String("title", doc.Title),
			zap.Int("chunks", len(chunks)))
	}
	return doc, nil
}

// DeleteDocument removes a document and its chunks.
func (in *Ingestor) DeleteDocument(ctx context.Context, id string) error {
	if err := in.store.DeleteChunksByDocumentID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	if err := in.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if in.logger != nil {
		in.logger.Debug("document deleted", zap.String("id", id))
	}
	return nil
}
