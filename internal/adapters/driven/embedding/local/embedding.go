// Package local provides a deterministic offline embedding service.
// It is the fallback when no embedding API is configured or reachable:
// quality is far below a real model, but vectors are stable across
// runs so indexing and search stay self-consistent.
package local

import (
	"context"
	"math"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService hashes text into a fixed-size unit vector.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates the local fallback embedding service.
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{dimensions: domain.FallbackDimensions}
}

// Embed folds the text's code points into a fixed-size vector and
// normalizes it to unit length. Empty input yields the zero vector.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, s.dimensions)
	for i, r := range []rune(text) {
		vec[i%s.dimensions] += float64(r) / 1000
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += v * v
	}
	norm := math.Sqrt(sumSquares)

	out := make([]float32, s.dimensions)
	if norm == 0 {
		return out, nil
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the fallback model identifier stored alongside
// vectors, so mixed-model indexes remain distinguishable.
func (s *EmbeddingService) ModelName() string {
	return domain.FallbackModelName
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
