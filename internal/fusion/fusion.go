// Package fusion normalizes heterogeneous retrieval scores and fuses dense
// and lexical rankings into a single hybrid ranking.
package fusion

import (
	"sort"

	"github.com/inkstone/quill/internal/lexical"
	"github.com/inkstone/quill/internal/models"
)

// NormalizeLexical maps raw lexical scores to [0,1] by dividing every score
// by the maximum in the batch. An empty batch, or one where every score is
// zero, yields an empty map rather than a division by zero.
func NormalizeLexical(results []*lexical.Result) map[string]float64 {
	if len(results) == 0 {
		return map[string]float64{}
	}
	maxScore := results[0].Score
	for _, r := range results {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	if maxScore <= 0 {
		return map[string]float64{}
	}
	normalized := make(map[string]float64, len(results))
	for _, r := range results {
		normalized[r.ChunkID] = r.Score / maxScore
	}
	return normalized
}

// Fuse computes, for every dense result,
//
//	hybrid = semanticWeight*similarity + lexicalWeight*lexical[chunkID]
//
// with 0.0 for chunks absent from the lexical map, then sorts descending by
// hybrid score and truncates to limit. When the lexical map is empty or nil
// (no lexical index built, or nothing matched), every hybrid score falls back
// to the raw similarity score: pure semantic ranking, never an error.
//
// Weights are taken as given; they are not required to sum to 1.0.
func Fuse(dense []*models.SearchResult, lexicalNorm map[string]float64, semanticWeight, lexicalWeight float64, limit int) []*models.SearchResult {
	fused := make([]*models.SearchResult, len(dense))
	copy(fused, dense)

	if len(lexicalNorm) == 0 {
		for _, r := range fused {
			r.HybridScore = r.SimilarityScore
		}
	} else {
		for _, r := range fused {
			r.HybridScore = semanticWeight*r.SimilarityScore + lexicalWeight*lexicalNorm[r.ChunkID]
		}
	}

	sort.SliceStable(fused, func(i, j int) bool { return fused[i].HybridScore > fused[j].HybridScore })
	if limit > 0 && limit < len(fused) {
		fused = fused[:limit]
	}
	return fused
}
