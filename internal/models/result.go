package models

// SearchResult is a single retrieval hit with the scores populated by each
// stage that has run. SimilarityScore is always 1.0 - distance as reported by
// the dense retriever; it is deliberately not clamped, so a distance above
// 1.0 yields a negative similarity.
type SearchResult struct {
	ChunkID    string        `json:"chunk_id"`
	DocumentID string        `json:"document_id"`
	Content    string        `json:"content"`
	Metadata   ChunkMetadata `json:"metadata"`

	SimilarityScore float64 `json:"similarity_score"`
	HybridScore     float64 `json:"hybrid_score,omitempty"`
	RecencyScore    float64 `json:"recency_score,omitempty"`
	QualityScore    float64 `json:"quality_score,omitempty"`
	CombinedScore   float64 `json:"combined_score,omitempty"`
}

// NewSearchResult builds a result from a raw dense retrieval hit.
func NewSearchResult(chunkID, documentID, content string, metadata ChunkMetadata, distance float64) *SearchResult {
	return &SearchResult{
		ChunkID:         chunkID,
		DocumentID:      documentID,
		Content:         content,
		Metadata:        metadata,
		SimilarityScore: 1.0 - distance,
	}
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}
