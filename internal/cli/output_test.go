package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/inkstone/quill/internal/models"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", OutputText, false},
		{"", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query:     "raft consensus",
		Total:     1,
		QueryTime: 12,
		Results: []*models.SearchResult{
			{
				ChunkID:         "doc1_0000",
				DocumentID:      "doc1",
				Content:         "raft consensus protocol",
				SimilarityScore: 0.91,
				HybridScore:     0.87,
			},
		},
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Found 1 results in 12ms", "Rank: 1", "Hybrid: 0.8700", "doc1_0000", "raft consensus protocol"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Combined:") {
		t.Error("combined score line should be omitted when unset")
	}
}

func TestWriteSearchResults_TextWithCombined(t *testing.T) {
	resp := sampleResponse()
	resp.Results[0].CombinedScore = 0.72
	resp.Results[0].RecencyScore = 0.5
	resp.Results[0].QualityScore = 1.0
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Combined: 0.7200 (Recency: 0.50, Quality: 1.00)") {
		t.Errorf("missing combined score line:\n%s", buf.String())
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 1 || len(decoded.Results) != 1 || decoded.Results[0].ChunkID != "doc1_0000" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestWriteOutline_Text(t *testing.T) {
	outline := &models.Outline{
		Title:        "Consensus Writeup",
		MeanCoverage: 42.5,
		Sections: []*models.OutlineSection{
			{
				Title:       "Raft",
				CoveragePct: 80.0,
				SourceCount: 3,
				Subsections: []*models.OutlineSection{
					{Title: "Leader election", CoveragePct: 5.0, SourceCount: 1, Notes: "Limited sources"},
				},
			},
		},
		Notes: []string{"Mean coverage is low"},
	}
	var buf bytes.Buffer
	if err := WriteOutline(&buf, outline, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Consensus Writeup",
		"Mean coverage: 42.5%",
		"- Raft (coverage 80.0%, 3 source(s))",
		"  - Leader election (coverage 5.0%, 1 source(s))",
		"    note: Limited sources",
		"! Mean coverage is low",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutline_JSON(t *testing.T) {
	outline := &models.Outline{
		Title:    "Writeup",
		Rejected: true,
		Sections: []*models.OutlineSection{{Title: "Only"}},
	}
	var buf bytes.Buffer
	if err := WriteOutline(&buf, outline, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.Outline
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Rejected || decoded.Title != "Writeup" || len(decoded.Sections) != 1 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
