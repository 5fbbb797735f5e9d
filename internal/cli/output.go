// Package cli provides output formatting for the Quill command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/pkg/utils"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "text", "":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteSearchResults writes a search response to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\nFound %d results in %dms\n\n", response.Total, response.QueryTime)
	for i, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Hybrid: %.4f (Similarity: %.4f)", i+1, result.HybridScore, result.SimilarityScore)
		if result.CombinedScore != 0 {
			fmt.Fprintf(w, " | Combined: %.4f (Recency: %.2f, Quality: %.2f)",
				result.CombinedScore, result.RecencyScore, result.QualityScore)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Chunk: %s | Document: %s\n", result.ChunkID, result.DocumentID)
		fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(result.Content, 200))
	}
	return nil
}

// WriteOutline writes a validated outline to w in the given format.
func WriteOutline(w io.Writer, outline *models.Outline, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outline)
	}
	if outline.Title != "" {
		fmt.Fprintf(w, "\n%s\n", outline.Title)
	}
	fmt.Fprintf(w, "Mean coverage: %.1f%% | Low-coverage sections: %d\n\n",
		outline.MeanCoverage, outline.LowCoverageCount)
	for _, section := range outline.Sections {
		writeSection(w, section, 0)
	}
	for _, note := range outline.Notes {
		fmt.Fprintf(w, "! %s\n", note)
	}
	return nil
}

func writeSection(w io.Writer, s *models.OutlineSection, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Fprintf(w, "%s- %s (coverage %.1f%%, %d source(s))\n", indent, s.Title, s.CoveragePct, s.SourceCount)
	if s.Notes != "" {
		fmt.Fprintf(w, "%s  note: %s\n", indent, s.Notes)
	}
	for _, sub := range s.Subsections {
		writeSection(w, sub, depth+1)
	}
}
