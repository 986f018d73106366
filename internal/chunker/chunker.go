package chunker

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Default window geometry, in bytes.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// sentenceWindow is how far back from the window end a sentence terminal
// still counts as a natural cut point.
const sentenceWindow = 100

// Chunk is one passage produced by a split pass. Page is 0 when the source
// page is unknown.
type Chunk struct {
	Text  string
	Index int
	Total int
	Page  int
}

// Chunker splits document text into overlapping passages, preferring cuts on
// sentence boundaries. It is stateless and safe for concurrent use.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window geometry and creates a Chunker. Overlap must be
// strictly less than size or the window cannot advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrValidation, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrValidation, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be less than chunk size %d", domain.ErrValidation, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the window size in bytes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the window overlap in bytes.
func (c *Chunker) Overlap() int { return c.overlap }

// Split chunks text without page attribution.
func (c *Chunker) Split(text string) []Chunk {
	return c.SplitPages(text, nil)
}

// SplitPages chunks text and attaches the source page of each chunk's start
// offset, resolved against the sorted page map. Empty text yields no chunks;
// text within one window yields exactly one.
func (c *Chunker) SplitPages(text string, pages []domain.PageSpan) []Chunk {
	if len(text) <= c.size {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []Chunk{{Text: trimmed, Index: 0, Total: 1, Page: pageFor(pages, 0)}}
	}

	var chunks []Chunk
	start := 0
	for start < len(text) {
		end := start + c.size
		cut := len(text)
		if end < len(text) {
			if se := lastSentenceEnd(text, start, end); se >= 0 && se > start+c.size-sentenceWindow {
				end = se + 1
			} else {
				// Hard cut: keep it on a rune boundary.
				for end > start && !utf8.RuneStart(text[end]) {
					end--
				}
			}
			cut = end
		}

		if piece := strings.TrimSpace(text[start:cut]); piece != "" {
			chunks = append(chunks, Chunk{Text: piece, Page: pageFor(pages, start)})
		}

		// Sentence cuts can shrink the window below the overlap; force
		// forward progress so the pass always terminates.
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}

	for i := range chunks {
		chunks[i].Index = i
		chunks[i].Total = len(chunks)
	}
	return chunks
}

// lastSentenceEnd returns the byte offset of the last '.' in text[start:end),
// or -1 when the window holds none.
func lastSentenceEnd(text string, start, end int) int {
	idx := strings.LastIndexByte(text[start:end], '.')
	if idx < 0 {
		return -1
	}
	return start + idx
}

// pageFor resolves the page whose span contains offset, falling back to the
// last page when no span matches. Returns 0 without a page map.
func pageFor(pages []domain.PageSpan, offset int) int {
	if len(pages) == 0 {
		return 0
	}
	i := sort.Search(len(pages), func(i int) bool { return pages[i].End > offset })
	if i < len(pages) && pages[i].Start <= offset {
		return pages[i].Page
	}
	return pages[len(pages)-1].Page
}
