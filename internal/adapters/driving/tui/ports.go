// Package tui provides the interactive chat terminal UI.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat is the retrieval-augmented journal assistant.
	Chat driving.ChatService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
