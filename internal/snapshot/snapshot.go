// Package snapshot builds immutable in-memory retrieval indexes from the
// corpus store and publishes them atomically.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/dense"
	"github.com/inkstone/quill/internal/lexical"
	"github.com/inkstone/quill/internal/storage"
)

// Snapshot is a frozen view of the corpus: a dense store and a lexical index
// built from the same chunk set. Snapshots are built off to the side and never
// mutated after publication.
type Snapshot struct {
	Dense   *dense.MemoryStore
	Lexical lexical.Index
	Chunks  int
	BuiltAt time.Time
}

// Builder constructs snapshots from the corpus store.
type Builder struct {
	store      storage.Store
	dimensions int
	indexType  string
	logger     *zap.Logger // optional; when set, logs build timing
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets a logger for build diagnostics.
func WithBuilderLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a snapshot builder. dimensions is the embedding width the
// dense store enforces; indexType selects the lexical implementation.
func NewBuilder(store storage.Store, dimensions int, cfg *config.RetrievalConfig, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:      store,
		dimensions: dimensions,
		indexType:  cfg.LexicalIndexType,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build loads every chunk from the store and constructs both indexes. The
// returned snapshot is complete; callers publish it through a Manager.
func (b *Builder) Build(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	chunks, err := b.store.ListChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}

	denseStore, err := dense.NewMemoryStore(b.dimensions)
	if err != nil {
		return nil, err
	}
	if err := denseStore.Build(chunks); err != nil {
		return nil, fmt.Errorf("failed to build dense store: %w", err)
	}

	lexIdx, err := lexical.NewIndex(b.indexType)
	if err != nil {
		return nil, err
	}
	if err := lexIdx.Build(chunks); err != nil {
		_ = lexIdx.Close()
		return nil, fmt.Errorf("failed to build lexical index: %w", err)
	}

	snap := &Snapshot{
		Dense:   denseStore,
		Lexical: lexIdx,
		Chunks:  len(chunks),
		BuiltAt: time.Now(),
	}
	if b.logger != nil {
		b.logger.Debug("snapshot built",
			zap.Int("chunks", len(chunks)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return snap, nil
}
