package driven

import "context"

// LLMService provides chat completion for the journal assistant.
// This is an optional service - when nil, chat is disabled but indexing
// and retrieval keep working.
//
// Implementations:
//   - OpenAI (and OpenAI-compatible endpoints such as Grok via BaseURL)
//   - Anthropic
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to surface bad credentials early.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling parameter. Zero means provider default.
	TopP float64
}
