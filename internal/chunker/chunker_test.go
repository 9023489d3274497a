package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkit/journalkit/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		assert.Equal(t, DefaultMaxWords, c.maxWords)
	})

	t.Run("custom threshold", func(t *testing.T) {
		c := New(WithMaxWords(40))
		assert.Equal(t, 40, c.maxWords)
	})

	t.Run("zero value ignored", func(t *testing.T) {
		c := New(WithMaxWords(0))
		assert.Equal(t, DefaultMaxWords, c.maxWords)
	})
}

func TestChunk_EmptyContent(t *testing.T) {
	c := New()
	chunks := c.Chunk("", "2024/01/2024-01-01.session.md")
	assert.Empty(t, chunks)
}

func TestChunk_HeadingsSplitContent(t *testing.T) {
	c := New()
	content := "# Morning\nFelt good today.\n# Evening\nTired but productive.\n"

	chunks := c.Chunk(content, "doc.md")
	require.Len(t, chunks, 2)

	assert.Equal(t, "doc.md-0", chunks[0].ID)
	assert.Equal(t, "Morning", chunks[0].Heading)
	assert.Equal(t, "# Morning\nFelt good today.", chunks[0].Text)

	assert.Equal(t, "doc.md-1", chunks[1].ID)
	assert.Equal(t, "Evening", chunks[1].Heading)
	assert.Equal(t, "# Evening\nTired but productive.", chunks[1].Text)
}

func TestChunk_NoHeadings_SingleShortChunk(t *testing.T) {
	c := New()
	chunks := c.Chunk("just a short note\nacross two lines\n", "doc.md")

	require.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0].Heading)
	assert.Equal(t, 0, chunks[0].Position)
}

func TestChunk_WordThresholdForcesSplit(t *testing.T) {
	c := New(WithMaxWords(10))
	line := strings.Repeat("word ", 6) // 6 words + trailing space per line
	content := line + "\n" + line + "\n" + line + "\n"

	chunks := c.Chunk(content, "doc.md")
	require.Len(t, chunks, 2)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Position)
		assert.NotEmpty(t, strings.TrimSpace(ch.Text))
	}

	// The buffer flushes on the line that tips it past the threshold,
	// so a chunk never holds more than maxWords plus one line.
	assert.Equal(t, 12, chunks[0].Tokens)
	assert.Equal(t, 6, chunks[1].Tokens)
	for _, ch := range chunks {
		lines := strings.Split(ch.Text, "\n")
		lastLine := domain.WordCount(lines[len(lines)-1])
		assert.LessOrEqual(t, ch.Tokens-lastLine, c.maxWords)
	}
}

func TestChunk_HeadingCarriesForwardAcrossSplits(t *testing.T) {
	c := New(WithMaxWords(10))
	long := strings.Repeat("thought ", 25)
	content := "## Reflections\n" + long + "\n"

	chunks := c.Chunk(content, "doc.md")
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.Equal(t, "Reflections", ch.Heading)
	}
}

func TestChunk_CoverageNoLineDropped(t *testing.T) {
	c := New(WithMaxWords(12))
	content := "# One\nalpha beta\ngamma\n# Two\n" + strings.Repeat("delta ", 30) + "\nepsilon\n"

	chunks := c.Chunk(content, "doc.md")
	require.NotEmpty(t, chunks)

	var joined strings.Builder
	for _, ch := range chunks {
		joined.WriteString(ch.Text)
		joined.WriteString("\n")
	}

	// Every original non-empty line survives, in order.
	rest := joined.String()
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		idx := strings.Index(rest, line)
		require.GreaterOrEqual(t, idx, 0, "line %q missing from chunk output", line)
		rest = rest[idx+len(line):]
	}
}

func TestChunk_IDsAreDeterministic(t *testing.T) {
	c := New()
	content := "# A\none two three\n# B\nfour five six\n"

	first := c.Chunk(content, "doc.md")
	second := c.Chunk(content, "doc.md")
	require.Equal(t, first, second)
}

func TestStripHeadingMarker(t *testing.T) {
	assert.Equal(t, "Morning", stripHeadingMarker("# Morning"))
	assert.Equal(t, "Deep", stripHeadingMarker("### Deep"))
	assert.Equal(t, "NoSpace", stripHeadingMarker("#NoSpace"))
	assert.Equal(t, "", stripHeadingMarker("#"))
}
