// Package engine runs hybrid (dense + lexical) retrieval over a corpus
// snapshot and re-ranks results by document attributes.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/dense"
	"github.com/inkstone/quill/internal/embedding"
	"github.com/inkstone/quill/internal/fusion"
	"github.com/inkstone/quill/internal/lexical"
	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/internal/weighting"
)

// overfetchFactor is how many times the requested count the weighted search
// variants pull from the unweighted stage before re-sorting, so the weighted
// top-K is drawn from a wide enough candidate pool.
const overfetchFactor = 3

// Engine coordinates embedding, dense retrieval, lexical scoring, fusion,
// and attribute weighting. All state is read-only after construction; one
// Engine serves concurrent queries.
type Engine struct {
	embedder   embedding.Embedder
	retriever  dense.Retriever
	lexicalIdx lexical.Searcher
	weighter   *weighting.Weighter
	cfg        *config.RetrievalConfig
	logger     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a retrieval engine. lexicalIdx may be nil; searches then
// degrade to pure semantic ranking.
func NewEngine(
	embedder embedding.Embedder,
	retriever dense.Retriever,
	lexicalIdx lexical.Searcher,
	weighter *weighting.Weighter,
	cfg *config.RetrievalConfig,
	opts ...Option,
) *Engine {
	e := &Engine{
		embedder:   embedder,
		retriever:  retriever,
		lexicalIdx: lexicalIdx,
		weighter:   weighter,
		cfg:        cfg,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// prepare validates the query and resolves an unset limit and fusion weights
// from the retrieval configuration.
func (e *Engine) prepare(query *models.SearchQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}
	query.ApplyDefaults(e.cfg.DefaultLimit, e.cfg.MaxLimit, e.cfg.SemanticWeight, e.cfg.LexicalWeight)
	return nil
}

// Search runs hybrid retrieval for the query and returns up to query.Limit
// results ranked by hybrid score.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) ([]*models.SearchResult, error) {
	if err := e.prepare(query); err != nil {
		return nil, err
	}
	emb, err := e.embedder.Embed(ctx, query.Query)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return e.searchEmbedded(ctx, query, emb, query.Limit)
}

// searchEmbedded is the shared post-embedding path. Batch and single-query
// searches both go through here, so they produce identical rankings.
func (e *Engine) searchEmbedded(ctx context.Context, query *models.SearchQuery, emb []float32, limit int) ([]*models.SearchResult, error) {
	candidates := e.cfg.TopKCandidates
	if limit > candidates {
		candidates = limit
	}

	var (
		hits       []*dense.Hit
		lexResults []*lexical.Result
		errChan    = make(chan error, 2)
		wg         sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		hits, err = e.retriever.Query(ctx, emb, query.Filter, candidates)
		if err != nil {
			errChan <- fmt.Errorf("dense retrieval failed: %w", err)
		}
	}()

	if e.lexicalIdx != nil && query.LexicalWeight > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			lexResults, err = e.lexicalIdx.Search(query.Query, candidates)
			if err != nil {
				errChan <- fmt.Errorf("lexical search failed: %w", err)
			}
		}()
	}

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	results := make([]*models.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = models.NewSearchResult(hit.ChunkID, hit.DocumentID, hit.Content, hit.Metadata, hit.Distance)
	}

	lexNorm := fusion.NormalizeLexical(lexResults)
	fused := fusion.Fuse(results, lexNorm, query.SemanticWeight, query.LexicalWeight, limit)

	e.logger.Debug("search complete",
		zap.String("query", query.Query),
		zap.Int("dense_hits", len(hits)),
		zap.Int("lexical_hits", len(lexResults)),
		zap.Int("returned", len(fused)),
	)
	return fused, nil
}

// SearchWithRecency runs hybrid retrieval with an over-fetched candidate
// pool, then re-ranks by the recency-weighted blend and truncates to
// query.Limit.
func (e *Engine) SearchWithRecency(ctx context.Context, query *models.SearchQuery) ([]*models.SearchResult, error) {
	results, rw, _, err := e.overfetch(ctx, query)
	if err != nil {
		return nil, err
	}
	e.weighter.ApplyRecency(results, rw, time.Now())
	return truncate(results, query.Limit), nil
}

// SearchWithQuality runs hybrid retrieval with an over-fetched candidate
// pool, then re-ranks by the quality-weighted blend.
func (e *Engine) SearchWithQuality(ctx context.Context, query *models.SearchQuery) ([]*models.SearchResult, error) {
	results, _, qw, err := e.overfetch(ctx, query)
	if err != nil {
		return nil, err
	}
	e.weighter.ApplyQuality(results, qw)
	return truncate(results, query.Limit), nil
}

// SearchWithWeights runs hybrid retrieval with an over-fetched candidate
// pool, then re-ranks by the full combined score (similarity remainder plus
// recency and quality terms).
func (e *Engine) SearchWithWeights(ctx context.Context, query *models.SearchQuery) ([]*models.SearchResult, error) {
	results, rw, qw, err := e.overfetch(ctx, query)
	if err != nil {
		return nil, err
	}
	e.weighter.ApplyCombined(results, rw, qw, time.Now())
	return truncate(results, query.Limit), nil
}

// overfetch validates the query, then runs the unweighted stage with three
// times the requested count. It also resolves zero recency/quality weights
// to the configured defaults.
func (e *Engine) overfetch(ctx context.Context, query *models.SearchQuery) ([]*models.SearchResult, float64, float64, error) {
	if err := e.prepare(query); err != nil {
		return nil, 0, 0, err
	}
	rw := query.RecencyWeight
	if rw == 0 {
		rw = e.weighter.RecencyWeight()
	}
	qw := query.QualityWeight
	if qw == 0 {
		qw = e.weighter.QualityWeight()
	}
	emb, err := e.embedder.Embed(ctx, query.Query)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("embedding failed: %w", err)
	}
	results, err := e.searchEmbedded(ctx, query, emb, query.Limit*overfetchFactor)
	if err != nil {
		return nil, 0, 0, err
	}
	return results, rw, qw, nil
}

// SearchBatch runs hybrid retrieval for several queries with a single
// embedding call. It returns one result list per query, in input order, each
// of length at most limit. Rankings are identical to issuing the queries one
// at a time.
func (e *Engine) SearchBatch(ctx context.Context, queries []string, limit int, filter *models.MetadataFilter) ([][]*models.SearchResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}
	embs, err := e.embedder.EmbedBatch(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("batch embedding failed: %w", err)
	}
	out := make([][]*models.SearchResult, len(queries))
	for i, text := range queries {
		q := &models.SearchQuery{Query: text, Limit: limit, Filter: filter}
		if err := e.prepare(q); err != nil {
			return nil, err
		}
		results, err := e.searchEmbedded(ctx, q, embs[i], q.Limit)
		if err != nil {
			return nil, err
		}
		out[i] = results
	}
	return out, nil
}

func truncate(results []*models.SearchResult, limit int) []*models.SearchResult {
	if limit > 0 && limit < len(results) {
		return results[:limit]
	}
	return results
}
