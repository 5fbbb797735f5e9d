package weighting

import (
	"sort"
	"time"

	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/pkg/utils"
)

// RecencyUnknown is the neutral recency score for chunks whose creation date
// is unknown. A missing date never fails the pipeline.
const RecencyUnknown = 0.5

const hoursPerYear = 24 * 365.25

// Weighter computes recency, quality, and combined scores for search
// results. It is read-only after construction and safe for concurrent use.
type Weighter struct {
	config        *Config
	maxMultiplier float64
}

// NewWeighter validates cfg and creates a Weighter. A nil cfg uses defaults.
func NewWeighter(cfg *Config) (*Weighter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxMult := 0.0
	for _, mult := range cfg.QualityMultipliers {
		if mult > maxMult {
			maxMult = mult
		}
	}
	return &Weighter{config: cfg, maxMultiplier: maxMult}, nil
}

// RecencyScore returns max(0, 1 - ageYears*decayRate), clamped to [0,1].
// A zero created time means the date is unknown and scores RecencyUnknown.
// The score is monotonically non-increasing in age.
func (w *Weighter) RecencyScore(created, now time.Time) float64 {
	if created.IsZero() {
		return RecencyUnknown
	}
	ageYears := now.Sub(created).Hours() / hoursPerYear
	if ageYears < 0 {
		ageYears = 0
	}
	return utils.Clamp01(1.0 - ageYears*w.config.DecayRate)
}

// QualityScore divides the rating's multiplier by the largest configured
// multiplier, so the top tier always scores exactly 1.0 no matter what the
// absolute magnitudes are. Unknown ratings fall back to the reference tier.
func (w *Weighter) QualityScore(rating models.QualityRating) float64 {
	mult, ok := w.config.QualityMultipliers[rating]
	if !ok {
		mult = w.config.QualityMultipliers[models.QualityReference]
	}
	return utils.Clamp01(mult / w.maxMultiplier)
}

// CombinedScore blends similarity, recency, and quality:
//
//	(1 - rw - qw)*similarity + rw*recency + qw*quality
//
// When rw+qw exceeds 1.0 the similarity term is negatively weighted; that is
// documented behavior and not clamped.
func (w *Weighter) CombinedScore(similarity, recency, quality, recencyWeight, qualityWeight float64) float64 {
	return (1.0-recencyWeight-qualityWeight)*similarity + recencyWeight*recency + qualityWeight*quality
}

// ApplyRecency annotates every result with its recency score and re-sorts by
// the recency-weighted blend of similarity and recency. Equal scores keep
// their incoming relative order.
func (w *Weighter) ApplyRecency(results []*models.SearchResult, recencyWeight float64, now time.Time) {
	for _, r := range results {
		r.RecencyScore = w.RecencyScore(r.Metadata.CreatedAt, now)
		r.CombinedScore = w.CombinedScore(r.SimilarityScore, r.RecencyScore, 0, recencyWeight, 0)
	}
	sortByCombined(results)
}

// ApplyQuality annotates every result with its quality score and re-sorts by
// the quality-weighted blend of similarity and quality.
func (w *Weighter) ApplyQuality(results []*models.SearchResult, qualityWeight float64) {
	for _, r := range results {
		r.QualityScore = w.QualityScore(r.Metadata.Quality)
		r.CombinedScore = w.CombinedScore(r.SimilarityScore, 0, r.QualityScore, 0, qualityWeight)
	}
	sortByCombined(results)
}

// ApplyCombined annotates recency, quality, and combined scores and re-sorts
// by the combined score.
func (w *Weighter) ApplyCombined(results []*models.SearchResult, recencyWeight, qualityWeight float64, now time.Time) {
	for _, r := range results {
		r.RecencyScore = w.RecencyScore(r.Metadata.CreatedAt, now)
		r.QualityScore = w.QualityScore(r.Metadata.Quality)
		r.CombinedScore = w.CombinedScore(r.SimilarityScore, r.RecencyScore, r.QualityScore, recencyWeight, qualityWeight)
	}
	sortByCombined(results)
}

func sortByCombined(results []*models.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
}

// RecencyWeight returns the configured default recency weight.
func (w *Weighter) RecencyWeight() float64 { return w.config.RecencyWeight }

// QualityWeight returns the configured default quality weight.
func (w *Weighter) QualityWeight() float64 { return w.config.QualityWeight }
