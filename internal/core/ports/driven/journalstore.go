package driven

import (
	"context"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// JournalStore persists documents, chunks and embeddings.
// Backed by SQLite. The store is single-writer by design; callers that
// index the same document concurrently get last-writer-wins rows.
type JournalStore interface {
	// UpsertDocument inserts or replaces a document row keyed by id.
	UpsertDocument(ctx context.Context, doc domain.Document) error

	// UpsertChunk inserts or replaces a chunk row and its embedding
	// row, keyed by chunk id. The vector is stored alongside the model
	// name that produced it.
	UpsertChunk(ctx context.Context, chunk domain.Chunk, embedding []float32, model string) error

	// Candidates returns up to limit chunks joined with their embedding
	// and parent document date, ordered by document date descending.
	// This is the recency-biased pre-filter before scoring, not the
	// final ranking.
	Candidates(ctx context.Context, limit int) ([]domain.Candidate, error)

	// PruneChunks removes chunks of the document at positions >= keep,
	// so a shrinking re-index leaves no stale rows behind. Embedding
	// rows follow via foreign key cascade.
	PruneChunks(ctx context.Context, documentID string, keep int) error

	// GetDocument retrieves a document by id.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document in position order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// Close releases the storage handle.
	Close() error
}
