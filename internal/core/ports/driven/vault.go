package driven

import (
	"context"
	"time"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// SessionVault stores raw journal session files: dated markdown with
// YAML front matter, laid out as sessions/YYYY/MM/YYYY-MM-DD.session.md
// under the vault root.
type SessionVault interface {
	// SaveEntry appends a timed writing entry to the day's session
	// file, creating it if needed, and returns the saved session.
	// Each entry is stored under a "## HH:MM - Entry N" heading.
	SaveEntry(ctx context.Context, content string, meta domain.EntryMetadata) (*domain.Session, error)

	// SaveSession writes a whole session body for the given day.
	// Returns domain.ErrSessionExists if a session is already present
	// and overwrite is not set.
	SaveSession(ctx context.Context, day time.Time, content string, meta domain.SessionFrontMatter, overwrite bool) (*domain.Session, error)

	// LoadSession reads the session for a day. Returns
	// domain.ErrNotFound if none exists.
	LoadSession(ctx context.Context, day time.Time) (*domain.Session, error)

	// RecentSessions returns sessions from the last days days, newest
	// first. Days without a session are skipped.
	RecentSessions(ctx context.Context, days int) ([]domain.Session, error)

	// Root returns the vault root directory.
	Root() string
}
