package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// systemPromptFormat frames the assistant and carries the retrieved
// journal context. The tone string comes from settings.
const systemPromptFormat = `You are a thoughtful journaling companion. Your tone is %s.
You help the writer reflect on their own journal. Ground your replies in
the journal excerpts below when they are relevant, and say so when they
are not. Refer to excerpts by their [date - heading] label.

Journal context:
%s`

// noContextNote replaces the context block when retrieval finds nothing.
const noContextNote = "(no relevant journal entries found)"

// ChatService is the retrieval-augmented journal assistant.
type ChatService struct {
	retriever driving.Retriever
	llm       driven.LLMService
	settings  domain.Settings
}

// NewChatService creates a new chat service. llm may be nil, in which
// case Reply returns domain.ErrLLMUnavailable.
func NewChatService(retriever driving.Retriever, llm driven.LLMService, settings domain.Settings) *ChatService {
	return &ChatService{
		retriever: retriever,
		llm:       llm,
		settings:  settings,
	}
}

// Reply retrieves context for the latest user message, sends the
// conversation to the configured LLM and returns the reply with the
// citations that backed it.
func (s *ChatService) Reply(ctx context.Context, messages []driven.ChatMessage) (*driving.ChatReply, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	query := latestUserMessage(messages)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Chat Reply")
	logger.Debug("Retrieving context for: %q", query)

	results, err := s.retriever.Search(ctx, query, domain.SearchOptions{
		TopK:         s.settings.Retriever.K,
		RecencyBoost: s.settings.Retriever.RecencyBoost,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	logger.Debug("Context chunks: %d", len(results))

	contextBlock := noContextNote
	citations := make([]string, 0, len(results))
	if len(results) > 0 {
		var sb strings.Builder
		for i, r := range results {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			fmt.Fprintf(&sb, "[%s]: %s", r.Citation(), r.Text)
			citations = append(citations, r.Citation())
		}
		contextBlock = sb.String()
	}

	system := driven.ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemPromptFormat, s.settings.Tone, contextBlock),
	}

	content, err := s.llm.Chat(ctx, append([]driven.ChatMessage{system}, messages...), driven.ChatOptions{
		MaxTokens:   s.settings.LLM.MaxTokens,
		Temperature: s.settings.LLM.Temperature,
		TopP:        s.settings.LLM.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return &driving.ChatReply{
		Content:   content,
		Citations: citations,
	}, nil
}

// latestUserMessage returns the content of the last user-role message.
func latestUserMessage(messages []driven.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}
