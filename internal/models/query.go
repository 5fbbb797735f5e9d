package models

import "fmt"

// MetadataFilter restricts retrieval to chunks matching every set field.
// A nil filter matches all chunks.
type MetadataFilter struct {
	Quality QualityRating `json:"quality,omitempty"`
	Format  string        `json:"format,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
}

// Matches reports whether a chunk's metadata passes the filter. Quality and
// format require an exact match; tags match when the chunk carries any of the
// filter's tags.
func (f *MetadataFilter) Matches(m ChunkMetadata) bool {
	if f == nil {
		return true
	}
	if f.Quality != "" && m.Quality != f.Quality {
		return false
	}
	if f.Format != "" && m.Format != f.Format {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			for _, have := range m.Tags {
				if want == have {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SearchQuery represents a retrieval request with optional filter and weights.
type SearchQuery struct {
	Query          string          `json:"query"`
	Limit          int             `json:"limit,omitempty"`
	SemanticWeight float64         `json:"semantic_weight,omitempty"`
	LexicalWeight  float64         `json:"lexical_weight,omitempty"`
	RecencyWeight  float64         `json:"recency_weight,omitempty"`
	QualityWeight  float64         `json:"quality_weight,omitempty"`
	Filter         *MetadataFilter `json:"filter,omitempty"`
}

// Query defaults used when neither the query nor the retrieval configuration
// sets a value.
const (
	DefaultQueryLimit     = 10
	DefaultMaxQueryLimit  = 100
	DefaultSemanticWeight = 0.7
	DefaultLexicalWeight  = 0.3
)

// Validate checks the query fields. Weights are intentionally not
// range-checked: callers may use weights that do not sum to 1.0, including
// combinations that invert similarity.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Filter != nil && q.Filter.Quality != "" && !q.Filter.Quality.Valid() {
		return fmt.Errorf("invalid quality rating in filter: %q", q.Filter.Quality)
	}
	return nil
}

// ApplyDefaults resolves an unset limit and fusion weight pair, preferring
// the caller's configured values. A zero defaultLimit, maxLimit, or weight
// pair falls back to the package defaults.
func (q *SearchQuery) ApplyDefaults(defaultLimit, maxLimit int, semanticWeight, lexicalWeight float64) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultQueryLimit
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxQueryLimit
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.SemanticWeight == 0 && q.LexicalWeight == 0 {
		if semanticWeight == 0 && lexicalWeight == 0 {
			semanticWeight = DefaultSemanticWeight
			lexicalWeight = DefaultLexicalWeight
		}
		q.SemanticWeight = semanticWeight
		q.LexicalWeight = lexicalWeight
	}
}
