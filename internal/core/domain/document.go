package domain

import "strings"

// DateLayout is the ISO date format used for document dates throughout
// the index ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Document represents an indexed journal document.
// One document corresponds to one session file in the vault.
type Document struct {
	// ID is the unique identifier, derived from the vault path.
	ID string

	// Path is the location of the session file within the vault.
	Path string

	// Title is the human-readable title. May be empty.
	Title string

	// Date is the journal date in DateLayout form.
	Date string

	// Hash is an optional content hash used for change detection.
	Hash string
}

// Chunk represents a searchable unit within a document.
// Documents are split into chunks for granular retrieval.
type Chunk struct {
	// ID is the unique identifier, "{document path}-{position}".
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Heading is the markdown heading active when the chunk was cut.
	// Empty for content before the first heading.
	Heading string

	// Text is the trimmed chunk text. Never empty for a stored chunk.
	Text string

	// Position is the ordinal position within the document.
	Position int

	// Tokens is the approximate size, counted as space-separated words.
	Tokens int
}

// Candidate is a chunk joined with its stored embedding and the parent
// document's date, as produced by the store's recency-ordered pre-filter.
type Candidate struct {
	Chunk

	// Embedding is the stored vector for the chunk.
	Embedding []float32

	// Model is the name of the embedding model that produced the vector.
	Model string

	// Date is the parent document's date in DateLayout form.
	Date string
}

// WordCount counts space-separated words the same way chunk token counts
// are computed. Newlines do not split words; only single spaces do.
func WordCount(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Split(s, " "))
}
