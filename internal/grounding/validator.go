// Package grounding applies corpus-wide policy to proposed outlines,
// rejecting or trimming sections that the corpus does not support.
package grounding

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/pkg/utils"
)

// Policy constants. These are deliberately not configurable; the thresholds
// are part of the grounding contract.
const (
	// RejectionRatio is the keyword-match ratio below which (strictly) the
	// whole outline is rejected.
	RejectionRatio = 0.5
	// AdvisoryMeanCoverage is the mean coverage percentage below which a
	// surviving outline gets a corpus-expansion advisory.
	AdvisoryMeanCoverage = 15.0
	// titlePreviewLen bounds the rejected-titles preview in notes.
	titlePreviewLen = 200
)

// Validator applies the grounding policy to outlines. It mutates the outline
// in place: the section list may shrink, notes accumulate, and derived
// statistics are recomputed after every mutation.
type Validator struct {
	logger *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// NewValidator creates a validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the grounding policy stages in order:
//
//  1. Keyword-match gate: if fewer than half the sections mention any
//     keyword, the outline is rejected and reduced to the matching subset.
//  2. Low-coverage pruning: weakly-covered sections whose titles carry no
//     keyword are dropped with an advisory.
//  3. Mean-coverage advisory for outlines that survive but remain thin.
//
// Notes are additive across stages; statistics are recomputed after each
// stage so the returned outline never carries stale aggregates. With an
// empty keyword set the keyword gate cannot be evaluated and is skipped.
func (v *Validator) Validate(outline *models.Outline, keywords []string) {
	if len(keywords) > 0 {
		v.applyKeywordGate(outline, keywords)
	}
	v.pruneLowCoverage(outline, keywords)
	v.appendMeanCoverageAdvisory(outline)
}

// applyKeywordGate rejects the outline when the keyword-match ratio is
// strictly below RejectionRatio. A ratio of exactly 0.5 passes.
func (v *Validator) applyKeywordGate(outline *models.Outline, keywords []string) {
	total := len(outline.Sections)
	if total == 0 {
		return
	}
	matching := make([]*models.OutlineSection, 0, total)
	var dropped []string
	for _, s := range outline.Sections {
		if sectionMatchesAnyKeyword(s, keywords) {
			matching = append(matching, s)
		} else {
			dropped = append(dropped, s.Title)
		}
	}
	ratio := float64(len(matching)) / float64(total)
	if ratio >= RejectionRatio {
		return
	}

	preview := utils.Truncate(strings.Join(dropped, "; "), titlePreviewLen)
	outline.Rejected = true
	outline.Notes = append(outline.Notes, fmt.Sprintf(
		"Outline rejected: only %d of %d sections (%.0f%%) relate to the keywords %v. Unrelated sections: %s",
		len(matching), total, ratio*100, keywords, preview,
	))
	outline.Sections = matching
	outline.RecomputeStats()

	v.logger.Info("outline rejected by keyword gate",
		zap.Float64("match_ratio", ratio),
		zap.Int("kept", len(matching)),
		zap.Int("dropped", len(dropped)),
	)
}

// pruneLowCoverage drops sections with weak but non-zero coverage whose
// titles do not themselves contain a keyword. Zero-coverage sections are
// kept: they already carry the "no coverage" note and rejecting them is the
// keyword gate's job, not this stage's.
func (v *Validator) pruneLowCoverage(outline *models.Outline, keywords []string) {
	kept := outline.Sections[:0]
	var pruned []string
	for _, s := range outline.Sections {
		weak := s.CoveragePct > 0 && s.CoveragePct < models.LowCoverageThreshold
		if weak && !containsAnyKeyword(s.Title, keywords) {
			pruned = append(pruned, s.Title)
			continue
		}
		kept = append(kept, s)
	}
	if len(pruned) == 0 {
		return
	}
	outline.Sections = kept
	outline.Notes = append(outline.Notes, fmt.Sprintf(
		"Pruned %d low-coverage section(s): %s",
		len(pruned), utils.Truncate(strings.Join(pruned, "; "), titlePreviewLen),
	))
	outline.RecomputeStats()

	v.logger.Debug("pruned low-coverage sections", zap.Strings("titles", pruned))
}

// appendMeanCoverageAdvisory attaches a non-fatal advisory when the
// surviving outline's mean coverage is positive but thin.
func (v *Validator) appendMeanCoverageAdvisory(outline *models.Outline) {
	outline.RecomputeStats()
	if outline.MeanCoverage <= 0 || outline.MeanCoverage >= AdvisoryMeanCoverage {
		return
	}
	outline.Notes = append(outline.Notes, fmt.Sprintf(
		"Mean corpus coverage is %.1f%%. Consider expanding the corpus or refining the keywords.",
		outline.MeanCoverage,
	))
}

// sectionMatchesAnyKeyword checks the title and description together.
func sectionMatchesAnyKeyword(s *models.OutlineSection, keywords []string) bool {
	return containsAnyKeyword(s.Title+" "+s.Description, keywords)
}

// containsAnyKeyword reports whether text contains any keyword,
// case-insensitive.
func containsAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
