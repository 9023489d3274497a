package driving

import (
	"context"

	"github.com/journalkit/journalkit/internal/core/ports/driven"
)

// ChatReply is an assistant reply with the journal citations that were
// supplied as context.
type ChatReply struct {
	// Content is the assistant's reply text.
	Content string `json:"content"`

	// Citations are "{date} - {heading}" references for the chunks
	// retrieved as context. Empty when nothing relevant was found.
	Citations []string `json:"citations,omitempty"`
}

// ChatService is the retrieval-augmented journal assistant.
type ChatService interface {
	// Reply retrieves context for the latest user message, sends the
	// conversation to the configured LLM and returns the reply.
	Reply(ctx context.Context, messages []driven.ChatMessage) (*ChatReply, error)
}
