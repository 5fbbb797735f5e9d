package ingest

import (
	"fmt"
	"strings"

	"github.com/inkstone/quill/internal/models"
)

// Chunker splits document text into overlapping word-based windows.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given size and overlap (in words).
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Chunk splits text into chunks with overlapping windows. Chunk IDs are
// derived from the document ID and window index so re-ingesting the same
// document produces the same IDs.
func (c *Chunker) Chunk(docID string, text string, meta models.ChunkMetadata) []*models.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = 1
	}
	chunks := make([]*models.Chunk, 0)
	chunkIndex := 0
	for i := 0; i < len(words); i += step {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, &models.Chunk{
			ID:         fmt.Sprintf("%s_%04d", docID, chunkIndex),
			DocumentID: docID,
			Content:    strings.Join(words[i:end], " "),
			ChunkIndex: chunkIndex,
			Metadata:   meta,
		})
		chunkIndex++
		if end >= len(words) {
			break
		}
	}
	return chunks
}
