// Package coverage measures how well corpus material supports a proposed
// outline, section by section.
package coverage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/pkg/utils"
)

// QueryFn issues a retrieval query and returns scored results. The engine's
// hybrid search satisfies this; tests inject stubs.
type QueryFn func(ctx context.Context, query string, n int) ([]*models.SearchResult, error)

// Advisory notes attached to sections. NoteNoCoverage marks sections with no
// corpus support at all.
const (
	NoteNoCoverage     = "No corpus coverage"
	noteLimitedSources = "Limited sources: %d distinct document(s), minimum is %d"
)

const (
	// resultCount is how many results each section query requests.
	resultCount = 10
	// topSimilarityCount is how many of the best hits contribute to the
	// mean similarity term of the coverage percentage.
	topSimilarityCount = 5
	// maxQueryKeywords caps how many keywords are folded into the query.
	maxQueryKeywords = 2
)

// Analyzer computes coverage statistics for outline sections, mutating them
// in place. Sibling sections may be analyzed concurrently; analyzing the
// same section from two goroutines is the caller's bug to prevent.
type Analyzer struct {
	retrieve   QueryFn
	minSources int
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer. minSources is the distinct-document count
// below which a section gets a "limited sources" advisory.
func NewAnalyzer(retrieve QueryFn, minSources int, opts ...Option) *Analyzer {
	a := &Analyzer{
		retrieve:   retrieve,
		minSources: minSources,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeOutline analyzes every top-level section of the outline with the
// same keyword set and refreshes the outline's derived statistics.
func (a *Analyzer) AnalyzeOutline(ctx context.Context, outline *models.Outline, keywords []string) error {
	for _, section := range outline.Sections {
		if err := a.AnalyzeSection(ctx, section, keywords); err != nil {
			return err
		}
	}
	outline.RecomputeStats()
	return nil
}

// AnalyzeSection queries the corpus for material supporting the section and
// fills in CoveragePct, SourceCount, and Notes, then recurses into all
// subsections. Coverage is computed independently at every level; a parent's
// coverage is never inherited.
func (a *Analyzer) AnalyzeSection(ctx context.Context, section *models.OutlineSection, keywords []string) error {
	results, err := a.retrieve(ctx, a.buildQuery(section, keywords), resultCount)
	if err != nil {
		return fmt.Errorf("coverage query for %q failed: %w", section.Title, err)
	}

	section.SourceCount = countDistinctDocuments(results)
	section.CoveragePct = coveragePct(results)

	switch {
	case len(results) == 0:
		section.Notes = NoteNoCoverage
	case section.SourceCount < a.minSources:
		section.Notes = fmt.Sprintf(noteLimitedSources, section.SourceCount, a.minSources)
	default:
		section.Notes = ""
	}

	a.logger.Debug("section analyzed",
		zap.String("title", section.Title),
		zap.Float64("coverage_pct", section.CoveragePct),
		zap.Int("source_count", section.SourceCount),
	)

	for _, sub := range section.Subsections {
		if err := a.AnalyzeSection(ctx, sub, keywords); err != nil {
			return err
		}
	}
	return nil
}

// buildQuery joins the section title, description, and up to two keywords
// into one retrieval query.
func (a *Analyzer) buildQuery(section *models.OutlineSection, keywords []string) string {
	parts := []string{section.Title}
	if section.Description != "" {
		parts = append(parts, section.Description)
	}
	n := len(keywords)
	if n > maxQueryKeywords {
		n = maxQueryKeywords
	}
	parts = append(parts, keywords[:n]...)
	return strings.Join(parts, " ")
}

// countDistinctDocuments counts unique owning documents, not raw chunks: ten
// chunks from one document is one source.
func countDistinctDocuments(results []*models.SearchResult) int {
	docs := make(map[string]bool, len(results))
	for _, r := range results {
		docs[r.DocumentID] = true
	}
	return len(docs)
}

// coveragePct scales both how many results came back (relative to the
// requested count) and the mean similarity of the best hits into [0,100].
// Zero results is exactly 0.
func coveragePct(results []*models.SearchResult) float64 {
	if len(results) == 0 {
		return 0.0
	}
	countFactor := float64(len(results)) / float64(resultCount)
	if countFactor > 1 {
		countFactor = 1
	}
	top := len(results)
	if top > topSimilarityCount {
		top = topSimilarityCount
	}
	var sum float64
	for _, r := range results[:top] {
		sum += utils.Clamp01(r.SimilarityScore)
	}
	meanSim := sum / float64(top)
	return countFactor * meanSim * 100.0
}
