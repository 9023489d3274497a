package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound indicates a dictation session id is unknown
	// or the session has been evicted after inactivity.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists indicates a session file already exists for the
	// day and neither append nor overwrite was requested.
	ErrSessionExists = errors.New("session already exists for this date")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Chat features are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service could be
	// constructed. The local fallback makes this unreachable in normal
	// operation; it is kept for explicit factory misconfiguration.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
