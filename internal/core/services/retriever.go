package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// scoredCandidate pairs a candidate with its combined score.
type scoredCandidate struct {
	candidate domain.Candidate
	score     float64
}

// RetrieverService answers similarity queries over the journal index.
type RetrieverService struct {
	store    driven.JournalStore
	embedder driven.EmbeddingService
}

// NewRetrieverService creates a new retriever service.
func NewRetrieverService(store driven.JournalStore, embedder driven.EmbeddingService) *RetrieverService {
	return &RetrieverService{
		store:    store,
		embedder: embedder,
	}
}

// Search embeds the query, scores the most recent CandidateLimit chunks
// by cosine similarity plus a recency term, and returns the top results.
func (s *RetrieverService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	logger.Debug("TopK: %d, RecencyBoost: %g", topK, opts.RecencyBoost)

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions (%s)", len(queryVec), s.embedder.ModelName())

	candidates, err := s.store.Candidates(ctx, domain.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	logger.Debug("Scoring %d candidates", len(candidates))

	now := time.Now()
	scored := make([]scoredCandidate, len(candidates))
	for i, cand := range candidates {
		similarity := cosineSimilarity(queryVec, cand.Embedding)
		recency := recencyScore(cand.Date, now, opts.RecencyBoost)
		scored[i] = scoredCandidate{
			candidate: cand,
			score:     similarity + recency,
		}
	}

	// Stable sort keeps the store's recency order among equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]domain.SearchResult, len(scored))
	for i, sc := range scored {
		results[i] = domain.SearchResult{
			ID:      sc.candidate.ID,
			Path:    sc.candidate.DocumentID,
			Heading: sc.candidate.Heading,
			Text:    sc.candidate.Text,
			Date:    sc.candidate.Date,
		}
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Vectors of different lengths are compared over the shorter prefix, so
// an index holding vectors from more than one model stays searchable.
// Either vector having zero norm yields 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// recencyScore computes boost * exp(-days * decay) for a document date.
// Unparseable dates contribute nothing.
func recencyScore(date string, now time.Time, boost float64) float64 {
	if boost == 0 {
		return 0
	}
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return 0
	}
	days := math.Floor(now.Sub(parsed).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return boost * math.Exp(-days*domain.RecencyDecayRate)
}
