package domain

import "time"

// EntryMetadata describes a single timed writing entry within a session.
// Captured by the timer UI and stored in the session file's front matter.
type EntryMetadata struct {
	EntryNumber     int    `yaml:"entry_number" json:"entry_number"`
	StartedAt       string `yaml:"started_at" json:"started_at"`
	FinishedAt      string `yaml:"finished_at" json:"finished_at"`
	DurationSeconds int    `yaml:"duration_seconds" json:"duration_seconds"`
	WordCount       int    `yaml:"word_count" json:"word_count"`
	CharCount       int    `yaml:"char_count" json:"char_count"`
	LineCount       int    `yaml:"line_count" json:"line_count"`
}

// SessionFrontMatter is the YAML front matter of a session file.
type SessionFrontMatter struct {
	Date            string          `yaml:"date"`
	Tags            []string        `yaml:"tags,omitempty"`
	Mood            int             `yaml:"mood,omitempty"`
	DurationSeconds int             `yaml:"duration_seconds,omitempty"`
	EntriesMetadata []EntryMetadata `yaml:"entries_metadata,omitempty"`
}

// Session is a loaded session file: front matter plus markdown body.
type Session struct {
	// Path is the vault-relative location of the session file.
	Path string

	// Content is the markdown body without front matter.
	Content string

	// Meta is the parsed front matter.
	Meta SessionFrontMatter
}

// DictationSession is an in-progress dictation, held in memory while the
// speech-to-text widget streams transcript segments.
type DictationSession struct {
	// ID is the registry-assigned session id.
	ID string

	// Language is the BCP 47 language tag for the dictation.
	Language string

	// Segments are the transcript pieces received so far.
	Segments []string

	// LastActivity is when the session last received a segment.
	// Sessions idle past the registry TTL are evicted.
	LastActivity time.Time
}
