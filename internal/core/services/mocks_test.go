package services

import (
	"context"
	"errors"
	"sort"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
)

// storedChunk is a chunk with its vector as held by memStore.
type storedChunk struct {
	chunk domain.Chunk
	vec   []float32
	model string
}

// memStore is an in-memory JournalStore for service tests.
type memStore struct {
	docs    map[string]domain.Document
	chunks  map[string]storedChunk
	failDoc error
}

var _ driven.JournalStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string]storedChunk),
	}
}

func (m *memStore) UpsertDocument(_ context.Context, doc domain.Document) error {
	if m.failDoc != nil {
		return m.failDoc
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *memStore) UpsertChunk(_ context.Context, chunk domain.Chunk, vec []float32, model string) error {
	m.chunks[chunk.ID] = storedChunk{chunk: chunk, vec: vec, model: model}
	return nil
}

func (m *memStore) Candidates(_ context.Context, limit int) ([]domain.Candidate, error) {
	var cands []domain.Candidate
	for _, sc := range m.chunks {
		doc, ok := m.docs[sc.chunk.DocumentID]
		if !ok {
			continue
		}
		cands = append(cands, domain.Candidate{
			Chunk:     sc.chunk,
			Embedding: sc.vec,
			Model:     sc.model,
			Date:      doc.Date,
		})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Date != cands[j].Date {
			return cands[i].Date > cands[j].Date
		}
		return cands[i].Position < cands[j].Position
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands, nil
}

func (m *memStore) PruneChunks(_ context.Context, documentID string, keep int) error {
	for id, sc := range m.chunks {
		if sc.chunk.DocumentID == documentID && sc.chunk.Position >= keep {
			delete(m.chunks, id)
		}
	}
	return nil
}

func (m *memStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *memStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, sc := range m.chunks {
		if sc.chunk.DocumentID == documentID {
			chunks = append(chunks, sc.chunk)
		}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Position < chunks[j].Position })
	return chunks, nil
}

func (m *memStore) Close() error { return nil }

// stubEmbedder returns fixed vectors per text, or a one-hot fallback.
type stubEmbedder struct {
	vectors map[string][]float32
	model   string
	err     error
	calls   int
}

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0, 0}, nil
}

func (s *stubEmbedder) Dimensions() int { return 4 }

func (s *stubEmbedder) ModelName() string {
	if s.model == "" {
		return "stub"
	}
	return s.model
}

func (s *stubEmbedder) Close() error { return nil }

// stubLLM records the messages it was sent and replies with a canned
// string.
type stubLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

var _ driven.LLMService = (*stubLLM)(nil)

func (s *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	s.messages = messages
	s.opts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) ModelName() string          { return "stub-llm" }
func (s *stubLLM) Ping(context.Context) error { return nil }
func (s *stubLLM) Close() error               { return nil }

// stubRetriever returns canned search results.
type stubRetriever struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

var _ driving.Retriever = (*stubRetriever)(nil)

func (s *stubRetriever) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	s.query = query
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

var errBoom = errors.New("boom")
