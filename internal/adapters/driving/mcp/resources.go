package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// uriScheme is the custom URI scheme for JournalKit resources.
const uriScheme = "journal://"

// recentDays is how far back the recent sessions resource looks.
const recentDays = 14

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Vault == nil {
		return
	}

	// Static resource for recent sessions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions/recent",
		Name:        "recent-sessions",
		Description: "Journal sessions from the last two weeks",
		MIMEType:    "application/json",
	}, s.handleRecentSessionsResource)

	// Template for a single day's session.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{date}",
		Name:        "session",
		Description: "A single day's journal session as markdown",
		MIMEType:    "text/markdown",
	}, s.handleSessionResource)
}

// handleRecentSessionsResource returns a summary of recent sessions.
func (s *Server) handleRecentSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Vault.RecentSessions(ctx, recentDays)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	type sessionInfo struct {
		Date  string   `json:"date"`
		Path  string   `json:"path"`
		Words int      `json:"words"`
		Tags  []string `json:"tags,omitempty"`
	}

	infos := make([]sessionInfo, len(sessions))
	for i := range sessions {
		infos[i] = sessionInfo{
			Date:  sessions[i].Meta.Date,
			Path:  sessions[i].Path,
			Words: domain.WordCount(sessions[i].Content),
			Tags:  sessions[i].Meta.Tags,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sessions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSessionResource returns one day's session body.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	date := extractSessionDate(req.Params.URI)
	if date == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	session, err := s.ports.Vault.LoadSession(ctx, day)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     session.Content,
		}},
	}, nil
}

// extractSessionDate extracts the date from a URI like journal://sessions/{date}.
func extractSessionDate(uri string) string {
	const prefix = uriScheme + "sessions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	date := strings.TrimPrefix(uri, prefix)
	if date == "recent" {
		return ""
	}
	return date
}
