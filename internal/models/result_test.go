package models

import "testing"

func TestNewSearchResultSimilarity(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0.0, 1.0},
		{0.25, 0.75},
		{1.0, 0.0},
		{1.3, -0.30000000000000004}, // similarity may go negative; never clamped
	}
	for _, tt := range tests {
		r := NewSearchResult("c1", "d1", "text", ChunkMetadata{}, tt.distance)
		if r.SimilarityScore != tt.want {
			t.Errorf("distance %v: similarity = %v, want %v", tt.distance, r.SimilarityScore, tt.want)
		}
	}
}

func TestNewSearchResultFields(t *testing.T) {
	meta := ChunkMetadata{Quality: QualityReference}
	r := NewSearchResult("c1", "d1", "some text", meta, 0.1)
	if r.ChunkID != "c1" || r.DocumentID != "d1" || r.Content != "some text" {
		t.Errorf("unexpected result fields: %+v", r)
	}
	if r.Metadata.Quality != QualityReference {
		t.Errorf("metadata not carried over")
	}
}
