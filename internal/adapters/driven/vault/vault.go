// Package vault stores raw journal sessions on disk. Each day gets one
// markdown file with YAML front matter, laid out as
// sessions/YYYY/MM/YYYY-MM-DD.session.md under the vault root.
package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
)

// Ensure Vault implements the interface.
var _ driven.SessionVault = (*Vault)(nil)

// frontMatterDelim separates YAML front matter from the markdown body.
const frontMatterDelim = "---"

// Vault is the filesystem-backed session store.
type Vault struct {
	root string
}

// New creates a vault rooted at the given directory. A leading ~ is
// expanded to the user's home directory.
func New(root string) (*Vault, error) {
	expanded, err := expandHome(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(expanded, "sessions"), 0700); err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}
	return &Vault{root: expanded}, nil
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// SessionPath returns the vault-relative path of a day's session file.
func SessionPath(day time.Time) string {
	return filepath.Join(
		"sessions",
		day.Format("2006"),
		day.Format("01"),
		day.Format(domain.DateLayout)+".session.md",
	)
}

// SaveEntry appends a timed writing entry to today's session file,
// creating it if needed. Each entry is written under a
// "## HH:MM - Entry N" heading so multi-entry days keep their entry
// boundaries in the markdown body.
func (v *Vault) SaveEntry(ctx context.Context, content string, meta domain.EntryMetadata) (*domain.Session, error) {
	day := time.Now()

	session, err := v.LoadSession(ctx, day)
	if err != nil {
		if err != domain.ErrNotFound {
			return nil, err
		}
		session = &domain.Session{
			Path: SessionPath(day),
			Meta: domain.SessionFrontMatter{Date: day.Format(domain.DateLayout)},
		}
	}

	if meta.EntryNumber == 0 {
		meta.EntryNumber = len(session.Meta.EntriesMetadata) + 1
	}
	session.Meta.EntriesMetadata = append(session.Meta.EntriesMetadata, meta)
	session.Meta.DurationSeconds += meta.DurationSeconds

	entry := fmt.Sprintf("## %s - Entry %d\n%s",
		entryTime(meta.StartedAt), meta.EntryNumber, content)
	if session.Content == "" {
		session.Content = "# " + session.Meta.Date + "\n\n" + entry
	} else {
		session.Content = session.Content + "\n---\n\n" + entry
	}

	if err := v.write(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveSession writes a whole session body for the given day. An
// existing session is only replaced when overwrite is set.
func (v *Vault) SaveSession(
	ctx context.Context,
	day time.Time,
	content string,
	meta domain.SessionFrontMatter,
	overwrite bool,
) (*domain.Session, error) {
	if _, err := v.LoadSession(ctx, day); err == nil && !overwrite {
		return nil, domain.ErrSessionExists
	} else if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	if meta.Date == "" {
		meta.Date = day.Format(domain.DateLayout)
	}

	session := &domain.Session{
		Path:    SessionPath(day),
		Content: content,
		Meta:    meta,
	}
	if err := v.write(session); err != nil {
		return nil, err
	}
	return session, nil
}

// entryTime renders the HH:MM label of an entry heading from the
// entry's started_at timestamp, falling back to the current time when
// it is missing or unparseable.
func entryTime(startedAt string) string {
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		return t.UTC().Format("15:04")
	}
	return time.Now().UTC().Format("15:04")
}

// LoadSession reads the session for a day.
func (v *Vault) LoadSession(_ context.Context, day time.Time) (*domain.Session, error) {
	relPath := SessionPath(day)
	data, err := os.ReadFile(filepath.Join(v.root, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	meta, body, err := parseFrontMatter(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", relPath, err)
	}

	return &domain.Session{
		Path:    relPath,
		Content: body,
		Meta:    meta,
	}, nil
}

// RecentSessions returns sessions from the last days days, newest
// first. Days without a session are skipped.
func (v *Vault) RecentSessions(ctx context.Context, days int) ([]domain.Session, error) {
	var sessions []domain.Session
	now := time.Now()
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)
		session, err := v.LoadSession(ctx, day)
		if err != nil {
			if err == domain.ErrNotFound {
				continue
			}
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

// write serializes a session to disk, creating parent directories.
func (v *Vault) write(session *domain.Session) error {
	fullPath := filepath.Join(v.root, session.Path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	metaYAML, err := yaml.Marshal(session.Meta)
	if err != nil {
		return fmt.Errorf("encoding front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontMatterDelim)
	sb.WriteString("\n")
	sb.Write(metaYAML)
	sb.WriteString(frontMatterDelim)
	sb.WriteString("\n\n")
	sb.WriteString(session.Content)
	if !strings.HasSuffix(session.Content, "\n") {
		sb.WriteString("\n")
	}

	if err := os.WriteFile(fullPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// parseFrontMatter splits a session file into front matter and body.
// Files without front matter are treated as all body.
func parseFrontMatter(raw string) (domain.SessionFrontMatter, string, error) {
	var meta domain.SessionFrontMatter

	if !strings.HasPrefix(raw, frontMatterDelim+"\n") {
		return meta, strings.TrimSpace(raw), nil
	}

	rest := raw[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return meta, strings.TrimSpace(raw), nil
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return meta, "", err
	}

	body := rest[end+len(frontMatterDelim)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return meta, strings.TrimSpace(body), nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
