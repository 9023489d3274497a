package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/journalkit/journalkit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
)

// Store is the SQLite-backed journal index.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.JournalStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.journalkit/data/journal.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".journalkit", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so chunk and embedding rows cascade on delete
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		// The migration and its version record commit together, so a
		// crash cannot leave an applied migration unrecorded
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("recording migration %s: %w", name, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertDocument stores or updates a document.
func (s *Store) UpsertDocument(ctx context.Context, doc domain.Document) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, title, date, hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			title = excluded.title,
			date = excluded.date,
			hash = excluded.hash,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Path, doc.Title, doc.Date, doc.Hash, now, now)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// UpsertChunk stores or updates a chunk together with its embedding.
// Both rows are written in a single transaction so a chunk is never
// visible without its vector.
func (s *Store) UpsertChunk(ctx context.Context, chunk domain.Chunk, embedding []float32, model string) error {
	if chunk.ID == "" || chunk.DocumentID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chunks (id, document_id, heading, content, position, tokens)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			heading = excluded.heading,
			content = excluded.content,
			position = excluded.position,
			tokens = excluded.tokens
	`, chunk.ID, chunk.DocumentID, chunk.Heading, chunk.Text, chunk.Position, chunk.Tokens)
	if err != nil {
		return fmt.Errorf("saving chunk: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO embeddings (chunk_id, model, vector)
		VALUES (?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			model = excluded.model,
			vector = excluded.vector
	`, chunk.ID, model, float32SliceToBytes(embedding))
	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Candidates returns up to limit embedded chunks ordered by document
// date descending, so retrieval scores the most recent entries first.
func (s *Store) Candidates(ctx context.Context, limit int) ([]domain.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.heading, c.content, c.position, c.tokens,
			e.model, e.vector, d.date
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
		JOIN documents d ON d.id = c.document_id
		ORDER BY d.date DESC, c.position ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate //nolint:prealloc // size unknown from query
	for rows.Next() {
		var cand domain.Candidate
		var vectorBlob []byte
		if err := rows.Scan(&cand.Chunk.ID, &cand.Chunk.DocumentID, &cand.Chunk.Heading,
			&cand.Chunk.Text, &cand.Chunk.Position, &cand.Chunk.Tokens,
			&cand.Model, &vectorBlob, &cand.Date); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		cand.Embedding = bytesToFloat32Slice(vectorBlob)
		candidates = append(candidates, cand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return candidates, nil
}

// PruneChunks removes all chunks of a document at position keep or
// beyond. Re-indexing a document that shrank leaves no stale tail
// chunks behind; their embeddings cascade.
func (s *Store) PruneChunks(ctx context.Context, documentID string, keep int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ? AND position >= ?", documentID, keep)
	if err != nil {
		return fmt.Errorf("pruning chunks: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, title, date, hash
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.Path, &doc.Title, &doc.Date, &doc.Hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return &doc, nil
}

// GetChunks retrieves all chunks for a document in position order.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, heading, content, position, tokens
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Heading,
			&chunk.Text, &chunk.Position, &chunk.Tokens); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
