package driving

import "context"

// DictationSessions manages in-progress dictation sessions. Sessions
// hold transcript segments streamed by the dictation widget and are
// evicted after a period of inactivity.
type DictationSessions interface {
	// StartSession creates a session and returns its id.
	StartSession(ctx context.Context, language string) (string, error)

	// AppendSegment adds a transcript segment to a session.
	AppendSegment(ctx context.Context, sessionID, segment string) error

	// EndSession closes a session and returns the full transcript.
	EndSession(ctx context.Context, sessionID string) (string, error)

	// ActiveSessions reports how many sessions are currently held.
	ActiveSessions() int
}
