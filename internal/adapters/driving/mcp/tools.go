package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

// SearchInput is the input schema for the journal_search tool.
type SearchInput struct {
	Query        string  `json:"query" jsonschema:"the search query to find journal entries"`
	Limit        int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	RecencyBoost float64 `json:"recency_boost,omitempty" jsonschema:"weight of the recency bias, 0 disables it (default 0.2)"`
}

// SearchOutput is the output schema for the journal_search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Heading  string `json:"heading,omitempty"`
	Text     string `json:"text"`
	Citation string `json:"citation"`
}

// SaveEntryInput is the input schema for the journal_save_entry tool.
type SaveEntryInput struct {
	Content string `json:"content" jsonschema:"the journal entry text to append to today's session"`
}

// SaveEntryOutput is the output schema for the journal_save_entry tool.
type SaveEntryOutput struct {
	Path string `json:"path"`
	Date string `json:"date"`
}

// DictationStartInput is the input schema for the dictation_start tool.
type DictationStartInput struct {
	Language string `json:"language,omitempty" jsonschema:"BCP 47 language tag of the dictation (default en-US)"`
}

// DictationStartOutput is the output schema for the dictation_start tool.
type DictationStartOutput struct {
	SessionID string `json:"session_id"`
}

// DictationAppendInput is the input schema for the dictation_append tool.
type DictationAppendInput struct {
	SessionID string `json:"session_id" jsonschema:"the dictation session id"`
	Segment   string `json:"segment" jsonschema:"the transcript segment to append"`
}

// DictationAppendOutput is the output schema for the dictation_append tool.
type DictationAppendOutput struct {
	SessionID string `json:"session_id"`
}

// DictationEndInput is the input schema for the dictation_end tool.
type DictationEndInput struct {
	SessionID string `json:"session_id" jsonschema:"the dictation session id"`
	Save      bool   `json:"save,omitempty" jsonschema:"append the transcript to today's session file"`
}

// DictationEndOutput is the output schema for the dictation_end tool.
type DictationEndOutput struct {
	Transcript string `json:"transcript"`
	Path       string `json:"path,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "journal_search",
		Description: "Search journal entries by meaning, most relevant first",
	}, s.handleSearch)

	if s.ports.Vault != nil && s.ports.Indexer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "journal_save_entry",
			Description: "Append a journal entry to today's session and index it",
		}, s.handleSaveEntry)
	}

	if s.ports.Dictation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "dictation_start",
			Description: "Start a dictation session for streaming transcript segments",
		}, s.handleDictationStart)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "dictation_append",
			Description: "Append a transcript segment to a dictation session",
		}, s.handleDictationAppend)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "dictation_end",
			Description: "End a dictation session and return the full transcript",
		}, s.handleDictationEnd)
	}
}

// handleSearch handles the journal_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		TopK:         input.Limit,
		RecencyBoost: input.RecencyBoost,
	}
	if opts.RecencyBoost == 0 {
		opts.RecencyBoost = domain.DefaultRecencyBoost
	}

	results, err := s.ports.Retriever.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			ID:       results[i].ID,
			Date:     results[i].Date,
			Heading:  results[i].Heading,
			Text:     results[i].Text,
			Citation: results[i].Citation(),
		}
	}

	return nil, output, nil
}

// handleSaveEntry handles the journal_save_entry tool invocation.
func (s *Server) handleSaveEntry(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveEntryInput,
) (*mcp.CallToolResult, SaveEntryOutput, error) {
	session, err := s.ports.Vault.SaveEntry(ctx, input.Content, domain.EntryMetadata{
		StartedAt:  time.Now().Format(time.RFC3339),
		FinishedAt: time.Now().Format(time.RFC3339),
		WordCount:  domain.WordCount(input.Content),
		CharCount:  len(input.Content),
	})
	if err != nil {
		return nil, SaveEntryOutput{}, err
	}

	meta := driving.DocumentMeta{Title: session.Meta.Date, Date: session.Meta.Date}
	if err := s.ports.Indexer.IndexDocument(ctx, session.Path, session.Content, meta); err != nil {
		return nil, SaveEntryOutput{}, err
	}

	return nil, SaveEntryOutput{Path: session.Path, Date: session.Meta.Date}, nil
}

// handleDictationStart handles the dictation_start tool invocation.
func (s *Server) handleDictationStart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DictationStartInput,
) (*mcp.CallToolResult, DictationStartOutput, error) {
	language := input.Language
	if language == "" {
		language = "en-US"
	}

	id, err := s.ports.Dictation.StartSession(ctx, language)
	if err != nil {
		return nil, DictationStartOutput{}, err
	}

	return nil, DictationStartOutput{SessionID: id}, nil
}

// handleDictationAppend handles the dictation_append tool invocation.
func (s *Server) handleDictationAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DictationAppendInput,
) (*mcp.CallToolResult, DictationAppendOutput, error) {
	if err := s.ports.Dictation.AppendSegment(ctx, input.SessionID, input.Segment); err != nil {
		return nil, DictationAppendOutput{}, err
	}
	return nil, DictationAppendOutput{SessionID: input.SessionID}, nil
}

// handleDictationEnd handles the dictation_end tool invocation.
func (s *Server) handleDictationEnd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DictationEndInput,
) (*mcp.CallToolResult, DictationEndOutput, error) {
	transcript, err := s.ports.Dictation.EndSession(ctx, input.SessionID)
	if err != nil {
		return nil, DictationEndOutput{}, err
	}

	output := DictationEndOutput{Transcript: transcript}

	if input.Save && s.ports.Vault != nil && s.ports.Indexer != nil {
		session, err := s.ports.Vault.SaveEntry(ctx, transcript, domain.EntryMetadata{
			FinishedAt: time.Now().Format(time.RFC3339),
			WordCount:  domain.WordCount(transcript),
			CharCount:  len(transcript),
		})
		if err != nil {
			return nil, DictationEndOutput{}, err
		}

		meta := driving.DocumentMeta{Title: session.Meta.Date, Date: session.Meta.Date}
		if err := s.ports.Indexer.IndexDocument(ctx, session.Path, session.Content, meta); err != nil {
			return nil, DictationEndOutput{}, err
		}
		output.Path = session.Path
	}

	return nil, output, nil
}
