package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// seedCandidate stores a chunk with a fixed vector under a dated document.
func seedCandidate(t *testing.T, store *memStore, docID, date, text string, position int, vec []float32) {
	t.Helper()
	ctx := context.Background()
	if _, ok := store.docs[docID]; !ok {
		require.NoError(t, store.UpsertDocument(ctx, domain.Document{ID: docID, Path: docID, Date: date}))
	}
	chunk := domain.Chunk{
		ID:         docID + "-" + text,
		DocumentID: docID,
		Heading:    "Notes",
		Text:       text,
		Position:   position,
		Tokens:     domain.WordCount(text),
	}
	require.NoError(t, store.UpsertChunk(ctx, chunk, vec, "stub"))
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewRetrieverService(newMemStore(), &stubEmbedder{})

	results, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RanksBySimilarity(t *testing.T) {
	store := newMemStore()
	today := time.Now().Format(domain.DateLayout)

	// One-hot vectors: the query matches "gardening" exactly
	seedCandidate(t, store, "doc-a", today, "gardening", 0, []float32{1, 0, 0, 0})
	seedCandidate(t, store, "doc-a", today, "cooking", 1, []float32{0, 1, 0, 0})
	seedCandidate(t, store, "doc-a", today, "mixed", 2, []float32{0.7, 0.7, 0, 0})

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"garden query": {1, 0, 0, 0},
	}}
	svc := NewRetrieverService(store, embedder)

	results, err := svc.Search(context.Background(), "garden query", domain.SearchOptions{TopK: 3})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "gardening", results[0].Text)
	assert.Equal(t, "mixed", results[1].Text)
	assert.Equal(t, "cooking", results[2].Text)
}

func TestSearch_TopKLimit(t *testing.T) {
	store := newMemStore()
	today := time.Now().Format(domain.DateLayout)
	for i, text := range []string{"one", "two", "three", "four"} {
		seedCandidate(t, store, "doc", today, text, i, []float32{1, 0, 0, 0})
	}
	svc := NewRetrieverService(store, &stubEmbedder{})

	results, err := svc.Search(context.Background(), "query", domain.SearchOptions{TopK: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Zero TopK falls back to the default
	results, err = svc.Search(context.Background(), "query", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSearch_RecencyBoostBreaksTies(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	recent := now.Format(domain.DateLayout)
	old := now.AddDate(0, 0, -60).Format(domain.DateLayout)

	// Identical similarity; only recency separates them
	seedCandidate(t, store, "doc-old", old, "old entry", 0, []float32{1, 0, 0, 0})
	seedCandidate(t, store, "doc-new", recent, "new entry", 0, []float32{1, 0, 0, 0})

	svc := NewRetrieverService(store, &stubEmbedder{})

	results, err := svc.Search(context.Background(), "query", domain.SearchOptions{
		TopK:         2,
		RecencyBoost: domain.DefaultRecencyBoost,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new entry", results[0].Text)
	assert.Equal(t, "old entry", results[1].Text)
}

func TestSearch_SimilarityOutweighsRecency(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	recent := now.Format(domain.DateLayout)
	old := now.AddDate(0, 0, -90).Format(domain.DateLayout)

	seedCandidate(t, store, "doc-old", old, "exact match", 0, []float32{1, 0, 0, 0})
	seedCandidate(t, store, "doc-new", recent, "unrelated", 0, []float32{0, 1, 0, 0})

	svc := NewRetrieverService(store, &stubEmbedder{})

	results, err := svc.Search(context.Background(), "query", domain.SearchOptions{
		TopK:         2,
		RecencyBoost: domain.DefaultRecencyBoost,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Cosine 1.0 on an old entry beats cosine 0 plus a 0.2 boost
	assert.Equal(t, "exact match", results[0].Text)
}

func TestSearch_UnparseableDateScoresWithoutRecency(t *testing.T) {
	store := newMemStore()
	seedCandidate(t, store, "doc-bad", "not-a-date", "undated", 0, []float32{1, 0, 0, 0})

	svc := NewRetrieverService(store, &stubEmbedder{})

	results, err := svc.Search(context.Background(), "query", domain.SearchOptions{
		TopK:         1,
		RecencyBoost: domain.DefaultRecencyBoost,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "undated", results[0].Text)
}

func TestSearch_EmbedderFailurePropagates(t *testing.T) {
	svc := NewRetrieverService(newMemStore(), &stubEmbedder{err: errBoom})

	_, err := svc.Search(context.Background(), "query", domain.SearchOptions{})
	assert.ErrorIs(t, err, errBoom)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Mismatched lengths are compared over the shorter prefix
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 5, 5}), 1e-9)

	// A zero vector never matches anything
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Zero(t, cosineSimilarity(nil, []float32{1, 0}))
}

func TestRecencyScore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sameDay := recencyScore("2026-03-01", now, 0.2)
	assert.InDelta(t, 0.2, sameDay, 1e-6)

	tenDays := recencyScore("2026-02-19", now, 0.2)
	assert.Less(t, tenDays, sameDay)
	assert.Greater(t, tenDays, 0.0)

	assert.Zero(t, recencyScore("garbage", now, 0.2))
	assert.Zero(t, recencyScore("2026-02-19", now, 0))
}
