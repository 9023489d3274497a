// Package domain defines the core business entities for journalkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An indexed journal document
//   - Chunk: A searchable unit within a document
//   - Candidate: A chunk joined with its embedding and document date
//   - SearchResult: A retrieval hit returned to callers
//   - Settings: Application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
