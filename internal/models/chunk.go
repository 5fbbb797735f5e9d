// Package models defines core data structures for chunks, queries, outlines, and search results.
package models

import "time"

// QualityRating is a curator-assigned tier for a document. Ratings are ordered
// from deprecated (lowest) to preferred (highest).
type QualityRating string

const (
	// QualityDeprecated marks documents that should rank last.
	QualityDeprecated QualityRating = "deprecated"
	// QualitySupplemental marks background material.
	QualitySupplemental QualityRating = "supplemental"
	// QualityReference is the neutral default tier.
	QualityReference QualityRating = "reference"
	// QualityPreferred marks the curator's best documents.
	QualityPreferred QualityRating = "preferred"
)

// Valid reports whether r is one of the defined tiers.
func (r QualityRating) Valid() bool {
	switch r {
	case QualityDeprecated, QualitySupplemental, QualityReference, QualityPreferred:
		return true
	}
	return false
}

// Rank returns the ordinal position of the rating, deprecated = 0.
func (r QualityRating) Rank() int {
	switch r {
	case QualityDeprecated:
		return 0
	case QualitySupplemental:
		return 1
	case QualityReference:
		return 2
	case QualityPreferred:
		return 3
	default:
		return -1
	}
}

// ChunkMetadata carries the per-document attributes used for filtering and
// weighting. CreatedAt/ModifiedAt zero values mean the date is unknown.
type ChunkMetadata struct {
	Quality    QualityRating `json:"quality,omitempty"`
	Tags       []string      `json:"tags,omitempty"`
	Format     string        `json:"format,omitempty"`
	SourceFile string        `json:"source_file,omitempty"`
	CreatedAt  time.Time     `json:"created_at,omitempty"`
	ModifiedAt time.Time     `json:"modified_at,omitempty"`
}

// Chunk is an immutable unit of indexed corpus text. Chunks are created once
// at snapshot build time and only read afterwards.
type Chunk struct {
	ID         string        `json:"id"`
	DocumentID string        `json:"document_id"`
	Content    string        `json:"content"`
	ChunkIndex int           `json:"chunk_index"`
	Metadata   ChunkMetadata `json:"metadata"`
	Embedding  []float32     `json:"-"`
}

// Document represents a stored source document. The engine itself only sees
// chunks; documents exist for ingest and the HTTP API.
type Document struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Metadata  ChunkMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DocumentInput is the input for creating a document via ingest.
type DocumentInput struct {
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title,omitempty"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata,omitempty"`
}
