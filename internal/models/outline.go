package models

// LowCoverageThreshold is the coverage percentage below which a section is
// considered low-coverage, both for outline statistics and for grounding
// validation pruning.
const LowCoverageThreshold = 5.0

// OutlineSection is a node in a proposed outline tree. CoveragePct,
// SourceCount, and Notes are mutated in place by coverage analysis; the tree
// shape itself is never changed by the analyzer.
type OutlineSection struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	CoveragePct float64           `json:"coverage_pct"`
	SourceCount int               `json:"source_count"`
	Notes       string            `json:"notes,omitempty"`
	Subsections []*OutlineSection `json:"subsections,omitempty"`
}

// Outline is a proposed document outline plus the validation state attached
// by grounding checks. Notes are additive: each validation stage appends.
type Outline struct {
	Title    string            `json:"title"`
	Sections []*OutlineSection `json:"sections"`
	Rejected bool              `json:"rejected,omitempty"`
	Notes    []string          `json:"notes,omitempty"`

	// Derived statistics, recomputed after every mutation of Sections.
	MeanCoverage     float64 `json:"mean_coverage"`
	LowCoverageCount int     `json:"low_coverage_count"`
}

// RecomputeStats refreshes MeanCoverage and LowCoverageCount from the
// current top-level section list.
func (o *Outline) RecomputeStats() {
	o.MeanCoverage = 0
	o.LowCoverageCount = 0
	if len(o.Sections) == 0 {
		return
	}
	var sum float64
	for _, s := range o.Sections {
		sum += s.CoveragePct
		if s.CoveragePct < LowCoverageThreshold {
			o.LowCoverageCount++
		}
	}
	o.MeanCoverage = sum / float64(len(o.Sections))
}

// Walk visits every section in the tree depth-first, parents before children.
func (o *Outline) Walk(fn func(*OutlineSection)) {
	for _, s := range o.Sections {
		walkSection(s, fn)
	}
}

func walkSection(s *OutlineSection, fn func(*OutlineSection)) {
	fn(s)
	for _, sub := range s.Subsections {
		walkSection(sub, fn)
	}
}
