package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkit/journalkit/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		retriever := &mockRetriever{
			results: []domain.SearchResult{
				{
					ID:      "sessions/2026/01/2026-01-10.session.md-0",
					Path:    "sessions/2026/01/2026-01-10.session.md",
					Heading: "Morning",
					Text:    "Planted the first beans.",
					Date:    "2026-01-10",
				},
			},
		}

		ports := &Ports{Retriever: retriever}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "beans", Limit: 3}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "2026-01-10", output.Results[0].Date)
		assert.Equal(t, "Morning", output.Results[0].Heading)
		assert.Equal(t, "Planted the first beans.", output.Results[0].Text)
		assert.Equal(t, "2026-01-10 - Morning", output.Results[0].Citation)

		assert.Equal(t, "beans", retriever.query)
		assert.Equal(t, 3, retriever.opts.TopK)
	})

	t.Run("zero recency boost falls back to default", func(t *testing.T) {
		retriever := &mockRetriever{}
		server, err := NewServer(&Ports{Retriever: retriever})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "q"})

		require.NoError(t, err)
		assert.InDelta(t, domain.DefaultRecencyBoost, retriever.opts.RecencyBoost, 1e-9)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		retriever := &mockRetriever{
			err: errors.New("search failed"),
		}

		server, err := NewServer(&Ports{Retriever: retriever})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleSaveEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and indexes the entry", func(t *testing.T) {
		vault := newMockVault()
		indexer := &mockIndexer{}
		server, err := NewServer(&Ports{
			Retriever: &mockRetriever{},
			Indexer:   indexer,
			Vault:     vault,
		})
		require.NoError(t, err)

		input := SaveEntryInput{Content: "Wrote before breakfast."}
		_, output, err := server.handleSaveEntry(ctx, nil, input)

		require.NoError(t, err)
		assert.NotEmpty(t, output.Path)
		assert.NotEmpty(t, output.Date)
		require.Len(t, indexer.paths, 1)
		assert.Equal(t, output.Path, indexer.paths[0])
	})

	t.Run("vault failure propagates", func(t *testing.T) {
		vault := newMockVault()
		vault.err = errors.New("disk full")
		server, err := NewServer(&Ports{
			Retriever: &mockRetriever{},
			Indexer:   &mockIndexer{},
			Vault:     vault,
		})
		require.NoError(t, err)

		_, _, err = server.handleSaveEntry(ctx, nil, SaveEntryInput{Content: "entry"})

		assert.ErrorContains(t, err, "disk full")
	})
}

func TestServer_dictationTools(t *testing.T) {
	ctx := context.Background()

	t.Run("full dictation lifecycle with save", func(t *testing.T) {
		dictation := newMockDictation()
		vault := newMockVault()
		indexer := &mockIndexer{}
		server, err := NewServer(&Ports{
			Retriever: &mockRetriever{},
			Indexer:   indexer,
			Vault:     vault,
			Dictation: dictation,
		})
		require.NoError(t, err)

		_, started, err := server.handleDictationStart(ctx, nil, DictationStartInput{})
		require.NoError(t, err)
		require.NotEmpty(t, started.SessionID)
		assert.Equal(t, 1, dictation.ActiveSessions())

		_, _, err = server.handleDictationAppend(ctx, nil, DictationAppendInput{
			SessionID: started.SessionID, Segment: "Today I planted",
		})
		require.NoError(t, err)
		_, _, err = server.handleDictationAppend(ctx, nil, DictationAppendInput{
			SessionID: started.SessionID, Segment: "three rows of beans.",
		})
		require.NoError(t, err)

		_, ended, err := server.handleDictationEnd(ctx, nil, DictationEndInput{
			SessionID: started.SessionID, Save: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Today I planted three rows of beans.", ended.Transcript)
		assert.NotEmpty(t, ended.Path)
		assert.Len(t, indexer.paths, 1)
		assert.Zero(t, dictation.ActiveSessions())
	})

	t.Run("end without save leaves the vault untouched", func(t *testing.T) {
		dictation := newMockDictation()
		vault := newMockVault()
		server, err := NewServer(&Ports{
			Retriever: &mockRetriever{},
			Indexer:   &mockIndexer{},
			Vault:     vault,
			Dictation: dictation,
		})
		require.NoError(t, err)

		_, started, err := server.handleDictationStart(ctx, nil, DictationStartInput{Language: "de-DE"})
		require.NoError(t, err)

		_, ended, err := server.handleDictationEnd(ctx, nil, DictationEndInput{
			SessionID: started.SessionID,
		})
		require.NoError(t, err)
		assert.Empty(t, ended.Path)
		assert.Empty(t, vault.sessions)
	})

	t.Run("unknown session returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Retriever: &mockRetriever{},
			Dictation: newMockDictation(),
		})
		require.NoError(t, err)

		_, _, err = server.handleDictationAppend(ctx, nil, DictationAppendInput{
			SessionID: "missing", Segment: "segment",
		})
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		_, _, err = server.handleDictationEnd(ctx, nil, DictationEndInput{SessionID: "missing"})
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
