package cli

import (
	"context"
	"errors"
	"time"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

var errTestBoom = errors.New("boom")

// mockRetriever returns canned results.
type mockRetriever struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockRetriever) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

// mockChat returns a canned reply.
type mockChat struct {
	reply    *driving.ChatReply
	err      error
	messages []driven.ChatMessage
}

func (m *mockChat) Reply(_ context.Context, messages []driven.ChatMessage) (*driving.ChatReply, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

// mockVault is an in-memory SessionVault keyed by date.
type mockVault struct {
	sessions map[string]domain.Session
}

func newMockVault() *mockVault {
	return &mockVault{sessions: make(map[string]domain.Session)}
}

func (m *mockVault) SaveEntry(_ context.Context, content string, _ domain.EntryMetadata) (*domain.Session, error) {
	day := time.Now().Format(domain.DateLayout)
	s := m.sessions[day]
	s.Meta.Date = day
	s.Path = "sessions/" + day + ".session.md"
	if s.Content != "" {
		s.Content += "\n\n"
	}
	s.Content += content
	m.sessions[day] = s
	return &s, nil
}

func (m *mockVault) SaveSession(_ context.Context, day time.Time, content string, meta domain.SessionFrontMatter, overwrite bool) (*domain.Session, error) {
	date := day.Format(domain.DateLayout)
	if _, ok := m.sessions[date]; ok && !overwrite {
		return nil, domain.ErrSessionExists
	}
	meta.Date = date
	s := domain.Session{
		Path:    "sessions/" + date + ".session.md",
		Content: content,
		Meta:    meta,
	}
	m.sessions[date] = s
	return &s, nil
}

func (m *mockVault) LoadSession(_ context.Context, day time.Time) (*domain.Session, error) {
	s, ok := m.sessions[day.Format(domain.DateLayout)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockVault) RecentSessions(_ context.Context, days int) ([]domain.Session, error) {
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

// mockIndexer records indexed paths.
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

// mockLLM satisfies driven.LLMService for commands that gate on it.
type mockLLM struct{}

func (m *mockLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return "", nil
}
func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// setupTestServices injects mocks into the package service vars so
// ensureServices becomes a no-op. The returned cleanup restores the
// previous state.
func setupTestServices() func() {
	oldSettings := settings
	oldRetriever := retrieverService
	oldChat := chatService
	oldVault := sessionVault
	oldIndexer := indexerService
	oldLLM := llmService

	settings = domain.DefaultSettings()
	retrieverService = &mockRetriever{results: []domain.SearchResult{
		{ID: "sessions/2026/01/2026-01-10.session.md-0", Path: "sessions/2026/01/2026-01-10.session.md",
			Heading: "Morning", Text: "Planted the first beans.", Date: "2026-01-10"},
	}}
	chatService = &mockChat{reply: &driving.ChatReply{
		Content:   "You planted beans on the 10th.",
		Citations: []string{"2026-01-10 - Morning"},
	}}
	sessionVault = newMockVault()
	indexerService = &mockIndexer{}
	llmService = &mockLLM{}

	return func() {
		settings = oldSettings
		retrieverService = oldRetriever
		chatService = oldChat
		sessionVault = oldVault
		indexerService = oldIndexer
		llmService = oldLLM
	}
}
