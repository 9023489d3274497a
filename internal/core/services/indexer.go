package services

import (
	"context"
	"fmt"

	"github.com/journalkit/journalkit/internal/chunker"
	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService ingests documents into the retrieval index.
type IndexerService struct {
	store    driven.JournalStore
	embedder driven.EmbeddingService
	chunker  *chunker.Chunker
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(
	store driven.JournalStore,
	embedder driven.EmbeddingService,
	chunker *chunker.Chunker,
) *IndexerService {
	return &IndexerService{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
	}
}

// IndexDocument chunks, embeds and persists a document. Re-indexing the
// same path replaces its chunks; chunks past the new chunk count are
// pruned so a document that shrank leaves nothing stale behind.
func (s *IndexerService) IndexDocument(
	ctx context.Context, path, content string, meta driving.DocumentMeta,
) error {
	logger.Section("Index Document")
	logger.Debug("Path: %s", path)

	if path == "" {
		return domain.ErrInvalidInput
	}

	doc := domain.Document{
		ID:    path,
		Path:  path,
		Title: meta.Title,
		Date:  meta.Date,
		Hash:  meta.Hash,
	}
	if err := s.store.UpsertDocument(ctx, doc); err != nil {
		return fmt.Errorf("upsert document %s: %w", path, err)
	}

	chunks := s.chunker.Chunk(content, path)
	logger.Debug("Chunked into %d pieces", len(chunks))

	for _, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("embed chunk %s: %w", chunk.ID, err)
		}
		// ModelName is read right after Embed so it names the model
		// that actually produced this vector
		model := s.embedder.ModelName()

		if err := s.store.UpsertChunk(ctx, chunk, vec, model); err != nil {
			return fmt.Errorf("store chunk %s: %w", chunk.ID, err)
		}
	}

	if err := s.store.PruneChunks(ctx, path, len(chunks)); err != nil {
		return fmt.Errorf("prune chunks for %s: %w", path, err)
	}

	logger.Info("Indexed %s: %d chunks", path, len(chunks))
	return nil
}
