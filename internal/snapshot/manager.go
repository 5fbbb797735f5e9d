package snapshot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/dense"
	"github.com/inkstone/quill/internal/lexical"
	"github.com/inkstone/quill/internal/models"
)

// Manager holds the current snapshot and swaps it atomically on rebuild. It
// implements dense.Retriever and lexical.Searcher by delegating to the current
// snapshot, so the retrieval engine always reads a consistent index pair.
type Manager struct {
	builder *Builder
	current atomic.Pointer[Snapshot]

	rebuildMu sync.Mutex // serializes rebuilds; readers are never blocked
	logger    *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets a logger for rebuild events.
func WithManagerLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager and performs the initial build.
func NewManager(ctx context.Context, builder *Builder, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{builder: builder}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Rebuild(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns the published snapshot.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

// Rebuild constructs a fresh snapshot and publishes it. The displaced
// snapshot is not closed: readers that loaded it through Current before the
// swap may still be searching it, and the in-memory indexes are reclaimed by
// the garbage collector once the last reader drops its reference. On build
// failure the previous snapshot stays published.
func (m *Manager) Rebuild(ctx context.Context) error {
	m.rebuildMu.Lock()
	defer m.rebuildMu.Unlock()

	snap, err := m.builder.Build(ctx)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("snapshot rebuild failed", zap.Error(err))
		}
		return err
	}
	m.current.Swap(snap)
	if m.logger != nil {
		m.logger.Info("snapshot published",
			zap.Int("chunks", snap.Chunks),
			zap.Time("built_at", snap.BuiltAt))
	}
	return nil
}

// Query implements dense.Retriever against the current snapshot.
func (m *Manager) Query(ctx context.Context, embedding []float32, filter *models.MetadataFilter, n int) ([]*dense.Hit, error) {
	snap := m.Current()
	if snap == nil {
		return nil, fmt.Errorf("no snapshot available")
	}
	return snap.Dense.Query(ctx, embedding, filter, n)
}

// Search implements lexical.Searcher against the current snapshot.
func (m *Manager) Search(query string, n int) ([]*lexical.Result, error) {
	snap := m.Current()
	if snap == nil {
		return nil, fmt.Errorf("no snapshot available")
	}
	return snap.Lexical.Search(query, n)
}

// Stats describes the published snapshot for status reporting.
type Stats struct {
	Chunks  int       `json:"chunks"`
	BuiltAt time.Time `json:"built_at"`
}

// Stats returns chunk count and build time of the current snapshot.
func (m *Manager) Stats() Stats {
	snap := m.Current()
	if snap == nil {
		return Stats{}
	}
	return Stats{Chunks: snap.Chunks, BuiltAt: snap.BuiltAt}
}

// Close releases the current snapshot's resources.
func (m *Manager) Close() error {
	if snap := m.current.Swap(nil); snap != nil {
		return snap.Lexical.Close()
	}
	return nil
}
