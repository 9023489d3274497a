package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockRetriever) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

// mockIndexer is a mock implementation of driving.Indexer.
type mockIndexer struct {
	paths []string
	err   error
}

func (m *mockIndexer) IndexDocument(_ context.Context, path, _ string, _ driving.DocumentMeta) error {
	if m.err != nil {
		return m.err
	}
	m.paths = append(m.paths, path)
	return nil
}

// mockVault is an in-memory mock of driven.SessionVault.
type mockVault struct {
	sessions map[string]domain.Session
	err      error
}

func newMockVault() *mockVault {
	return &mockVault{sessions: make(map[string]domain.Session)}
}

func (m *mockVault) SaveEntry(_ context.Context, content string, _ domain.EntryMetadata) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	date := time.Now().Format(domain.DateLayout)
	s := m.sessions[date]
	s.Meta.Date = date
	s.Path = "sessions/" + date + ".session.md"
	if s.Content != "" {
		s.Content += "\n\n"
	}
	s.Content += content
	m.sessions[date] = s
	return &s, nil
}

func (m *mockVault) SaveSession(_ context.Context, day time.Time, content string, meta domain.SessionFrontMatter, _ bool) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	meta.Date = day.Format(domain.DateLayout)
	s := domain.Session{
		Path:    "sessions/" + meta.Date + ".session.md",
		Content: content,
		Meta:    meta,
	}
	m.sessions[meta.Date] = s
	return &s, nil
}

func (m *mockVault) LoadSession(_ context.Context, day time.Time) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[day.Format(domain.DateLayout)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockVault) RecentSessions(_ context.Context, days int) ([]domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Session
	now := time.Now()
	for i := 0; i < days; i++ {
		if s, ok := m.sessions[now.AddDate(0, 0, -i).Format(domain.DateLayout)]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockVault) Root() string { return "/tmp/vault" }

// mockDictation is a mock implementation of driving.DictationSessions.
type mockDictation struct {
	segments map[string][]string
	next     int
	err      error
}

func newMockDictation() *mockDictation {
	return &mockDictation{segments: make(map[string][]string)}
}

func (m *mockDictation) StartSession(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.next++
	id := "session-" + string(rune('0'+m.next))
	m.segments[id] = nil
	return id, nil
}

func (m *mockDictation) AppendSegment(_ context.Context, sessionID, segment string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.segments[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	m.segments[sessionID] = append(m.segments[sessionID], segment)
	return nil
}

func (m *mockDictation) EndSession(_ context.Context, sessionID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	segments, ok := m.segments[sessionID]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	delete(m.segments, sessionID)
	return strings.Join(segments, " "), nil
}

func (m *mockDictation) ActiveSessions() int { return len(m.segments) }
