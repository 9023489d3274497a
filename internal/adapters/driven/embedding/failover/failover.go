// Package failover composes a primary embedding service with the local
// fallback. Indexing and search keep working offline or with a bad API
// key; the price is lower quality vectors until the primary recovers.
package failover

import (
	"context"
	"sync/atomic"

	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService tries the primary service first and silently falls
// back on error. When primary is nil every call goes to the fallback.
type EmbeddingService struct {
	primary  driven.EmbeddingService
	fallback driven.EmbeddingService

	// usedFallback records whether the most recent Embed call was
	// served by the fallback, so ModelName matches the vector that
	// callers are about to store.
	usedFallback atomic.Bool
}

// NewEmbeddingService creates a failover embedding service. fallback
// must never be nil; primary may be.
func NewEmbeddingService(primary, fallback driven.EmbeddingService) *EmbeddingService {
	s := &EmbeddingService{
		primary:  primary,
		fallback: fallback,
	}
	s.usedFallback.Store(primary == nil)
	return s
}

// Embed generates a vector embedding, preferring the primary service.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.primary != nil {
		vec, err := s.primary.Embed(ctx, text)
		if err == nil {
			s.usedFallback.Store(false)
			return vec, nil
		}
		logger.Warn("primary embedding failed, using fallback: %v", err)
	}
	s.usedFallback.Store(true)
	return s.fallback.Embed(ctx, text)
}

// Dimensions returns the vector size of the service that served the
// most recent Embed call.
func (s *EmbeddingService) Dimensions() int {
	if s.usedFallback.Load() {
		return s.fallback.Dimensions()
	}
	return s.primary.Dimensions()
}

// ModelName returns the model that produced the most recent embedding.
// Callers storing a vector should read this immediately after Embed.
func (s *EmbeddingService) ModelName() string {
	if s.usedFallback.Load() {
		return s.fallback.ModelName()
	}
	return s.primary.ModelName()
}

// Close releases both services.
func (s *EmbeddingService) Close() error {
	if s.primary != nil {
		if err := s.primary.Close(); err != nil {
			return err
		}
	}
	return s.fallback.Close()
}
