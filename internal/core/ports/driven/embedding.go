package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations:
//   - OpenAI (text-embedding-3-small and friends)
//   - the deterministic local fallback (dimension 1536, model "simple")
//   - a failover composite that tries the remote provider and falls
//     back to the local method on any error, so indexing and search
//     never fail for lack of an embedding provider
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
