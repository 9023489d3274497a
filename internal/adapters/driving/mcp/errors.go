// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants like Claude search the journal, save entries and
// stream dictation sessions into the vault.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retriever is not provided.
var ErrMissingRetriever = errors.New("mcp: retriever is required")
