package lexical

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/inkstone/quill/internal/models"
)

// BM25 parameters. k1 controls term-frequency saturation, b controls length
// normalization.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// chunkStats holds the per-chunk term statistics computed at build time.
type chunkStats struct {
	id        string
	termFreq  map[string]int
	length    int
	insertPos int
}

// MemoryIndex is an in-memory BM25 index over chunk text. Built once per
// corpus snapshot; reads are safe from any number of goroutines after Build
// returns.
type MemoryIndex struct {
	mu      sync.RWMutex
	byTerm  map[string][]*chunkStats
	docFreq map[string]int
	avgLen  float64
	numDocs int
}

// NewMemoryIndex creates an empty memory index. Search on an empty index
// returns no results, never an error.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		byTerm:  make(map[string][]*chunkStats),
		docFreq: make(map[string]int),
	}
}

// Build computes term statistics for the chunk set, replacing any previous
// contents. The whole structure is assembled off to the side and swapped in
// at the end, so concurrent readers never observe a partial build.
func (m *MemoryIndex) Build(chunks []*models.Chunk) error {
	stats := make([]*chunkStats, 0, len(chunks))
	byTerm := make(map[string][]*chunkStats)
	docFreq := make(map[string]int)
	totalLen := 0

	for i, chunk := range chunks {
		terms := Tokenize(chunk.Content)
		cs := &chunkStats{
			id:        chunk.ID,
			termFreq:  make(map[string]int, len(terms)),
			length:    len(terms),
			insertPos: i,
		}
		for _, t := range terms {
			cs.termFreq[t]++
		}
		for t := range cs.termFreq {
			docFreq[t]++
			byTerm[t] = append(byTerm[t], cs)
		}
		totalLen += cs.length
		stats = append(stats, cs)
	}

	avgLen := 0.0
	if len(stats) > 0 {
		avgLen = float64(totalLen) / float64(len(stats))
	}

	m.mu.Lock()
	m.byTerm = byTerm
	m.docFreq = docFreq
	m.avgLen = avgLen
	m.numDocs = len(stats)
	m.mu.Unlock()
	return nil
}

// Search returns up to n chunks ranked by BM25 score descending. Ties are
// broken by original insertion order, so repeated queries are stable.
func (m *MemoryIndex) Search(query string, n int) ([]*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || m.numDocs == 0 {
		return nil, nil
	}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	scores := make(map[*chunkStats]float64)
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		matching := m.byTerm[term]
		if len(matching) == 0 {
			continue
		}
		idf := math.Log(1 + (float64(m.numDocs)-float64(m.docFreq[term])+0.5)/(float64(m.docFreq[term])+0.5))
		for _, cs := range matching {
			tf := float64(cs.termFreq[term])
			norm := 1 - bm25B + bm25B*float64(cs.length)/m.avgLen
			scores[cs] += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
		}
	}
	if len(scores) == 0 {
		return nil, nil
	}

	ranked := make([]*chunkStats, 0, len(scores))
	for cs := range scores {
		ranked = append(ranked, cs)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i].insertPos < ranked[j].insertPos
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]*Result, n)
	for i := 0; i < n; i++ {
		out[i] = &Result{ChunkID: ranked[i].id, Score: scores[ranked[i]]}
	}
	return out, nil
}

// Len returns the number of indexed chunks.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.numDocs
}

// Close is a no-op for MemoryIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

// Tokenize lowercases text and splits it on non-alphanumeric runes.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
