// Package chunker splits document text into overlapping word windows.
package chunker

import (
	"fmt"
	"strings"
)

// Default chunking parameters.
const (
	DefaultWindow  = 500
	DefaultOverlap = 50
)

// Chunker splits text into fixed-size word windows that overlap by a
// fixed number of words.
type Chunker struct {
	window  int
	overlap int
}

// New creates a Chunker. The overlap must be smaller than the window,
// otherwise the scan position would never advance.
func New(window, overlap int) (*Chunker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("chunk window must be positive, got %d", window)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= window {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than window (%d)", overlap, window)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Window returns the configured window size in words.
func (c *Chunker) Window() int { return c.window }

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into word windows of the configured size, each
// starting window−overlap words after the previous one. The window that
// reaches the last word is the final chunk, even if shorter. Text with
// fewer words than one window yields a single chunk; empty text yields
// none.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); {
		end := i + c.window
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))

		if i+c.window >= len(words) {
			break
		}
		i += c.window - c.overlap
	}
	return chunks
}
