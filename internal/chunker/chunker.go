// Package chunker splits journal documents into heading-aware,
// bounded-size chunks for embedding and retrieval.
package chunker

import (
	"strconv"
	"strings"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// DefaultMaxWords is the word count past which a chunk is flushed.
// For typical prose this bounds chunks to roughly 400-800 tokens.
const DefaultMaxWords = 150

// Chunker splits document content on markdown headings and a running
// word-count threshold.
type Chunker struct {
	maxWords int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxWords sets the word count threshold per chunk.
func WithMaxWords(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxWords = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxWords: DefaultMaxWords}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits content into ordered chunks for the document at path.
// A heading line ("#" repeated one or more times) flushes the pending
// buffer under the previous heading before becoming the first line of
// the next chunk. Independent of headings, the buffer is flushed once
// it exceeds the word threshold. Chunk ids are "{path}-{position}".
func (c *Chunker) Chunk(content, path string) []domain.Chunk {
	var chunks []domain.Chunk
	var buf strings.Builder
	heading := ""

	flush := func() {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text == "" {
			return
		}
		pos := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:         chunkID(path, pos),
			DocumentID: path,
			Heading:    heading,
			Text:       text,
			Position:   pos,
			Tokens:     domain.WordCount(text),
		})
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			flush()
			heading = stripHeadingMarker(line)
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		if domain.WordCount(buf.String()) > c.maxWords {
			flush()
		}
	}

	flush()
	return chunks
}

// chunkID derives the deterministic chunk id from the document path and
// the chunk's position.
func chunkID(path string, position int) string {
	return path + "-" + strconv.Itoa(position)
}

// stripHeadingMarker removes the leading "#" run and following spaces.
func stripHeadingMarker(line string) string {
	trimmed := strings.TrimLeft(line, "#")
	return strings.TrimLeft(trimmed, " ")
}
