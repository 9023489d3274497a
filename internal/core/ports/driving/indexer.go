package driving

import "context"

// DocumentMeta carries the metadata supplied when indexing a document.
type DocumentMeta struct {
	// Title is optional.
	Title string

	// Date is the journal date in domain.DateLayout form.
	Date string

	// Hash is an optional content hash for change detection.
	Hash string
}

// Indexer ingests documents into the retrieval index.
type Indexer interface {
	// IndexDocument chunks, embeds and persists a document. The
	// document id is its path; re-indexing the same path replaces the
	// document and all its chunks and embeddings.
	IndexDocument(ctx context.Context, path, content string, meta DocumentMeta) error
}
