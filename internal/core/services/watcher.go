package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

// sessionSuffix marks indexable session files in the vault.
const sessionSuffix = ".session.md"

// WatcherService keeps the index in sync with the vault. It watches the
// sessions tree and re-indexes a session file whenever it is written.
type WatcherService struct {
	vault   driven.SessionVault
	indexer driving.Indexer

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewWatcherService creates a new vault watcher.
func NewWatcherService(vault driven.SessionVault, indexer driving.Indexer) *WatcherService {
	return &WatcherService{
		vault:   vault,
		indexer: indexer,
	}
}

// Start begins watching the vault's sessions tree. New year and month
// directories are picked up as they appear. Watching continues until
// Stop is called or the context is cancelled.
func (s *WatcherService) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	root := filepath.Join(s.vault.Root(), "sessions")
	if err := watchTree(watcher, root); err != nil {
		watcher.Close()
		return err
	}
	logger.Info("Watching %s", root)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
	return nil
}

// Stop terminates the watch loop and waits for it to exit.
func (s *WatcherService) Stop() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.wg.Wait()
}

// loop dispatches filesystem events until the watcher closes.
func (s *WatcherService) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(ctx, event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent reacts to a single filesystem event.
func (s *WatcherService) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.watcher.Add(event.Name); err != nil {
				logger.Warn("Failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}
	if !strings.HasSuffix(event.Name, sessionSuffix) {
		return
	}

	day, err := dayFromSessionPath(event.Name)
	if err != nil {
		logger.Warn("Skipping %s: %v", event.Name, err)
		return
	}

	if err := s.indexDay(ctx, day); err != nil {
		logger.Warn("Re-index of %s failed: %v", event.Name, err)
	}
}

// indexDay loads a day's session from the vault and indexes its body.
func (s *WatcherService) indexDay(ctx context.Context, day time.Time) error {
	session, err := s.vault.LoadSession(ctx, day)
	if err != nil {
		return err
	}

	logger.Debug("Re-indexing %s", session.Path)
	return s.indexer.IndexDocument(ctx, session.Path, session.Content, driving.DocumentMeta{
		Date: session.Meta.Date,
	})
}

// dayFromSessionPath extracts the journal date from a session filename.
func dayFromSessionPath(path string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(path), sessionSuffix)
	return time.Parse(domain.DateLayout, base)
}

// watchTree adds a directory and all its subdirectories to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
