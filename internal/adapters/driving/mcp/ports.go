package mcp

import (
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

// Ports aggregates the driving and driven ports the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever answers journal search queries.
	Retriever driving.Retriever

	// Indexer ingests saved entries into the index.
	Indexer driving.Indexer

	// Vault stores session files.
	Vault driven.SessionVault

	// Dictation manages in-progress dictation sessions.
	Dictation driving.DictationSessions
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	// Indexer, Vault and Dictation are optional; the matching tools
	// and resources are simply not registered without them
	return nil
}
