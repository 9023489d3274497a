package driving

import (
	"context"

	"github.com/journalkit/journalkit/internal/core/domain"
)

// Retriever answers similarity queries over the journal index.
type Retriever interface {
	// Search embeds the query, scores recency-ordered candidates by
	// cosine similarity plus a recency term, and returns at most
	// opts.TopK results. Scores are not exposed.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
