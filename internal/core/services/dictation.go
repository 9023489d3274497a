package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

// Ensure DictationService implements the interface.
var _ driving.DictationSessions = (*DictationService)(nil)

// Dictation registry defaults.
const (
	// DefaultSessionTTL is how long an idle dictation session is kept.
	DefaultSessionTTL = 5 * time.Minute

	// DefaultSweepInterval is how often expired sessions are evicted.
	DefaultSweepInterval = 5 * time.Minute
)

// DictationService holds in-progress dictation sessions in memory and
// evicts the ones that go idle past the TTL.
type DictationService struct {
	mu       sync.Mutex
	sessions map[string]*domain.DictationSession
	ttl      time.Duration
	sweep    time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDictationService creates a new dictation session registry.
func NewDictationService() *DictationService {
	return &DictationService{
		sessions: make(map[string]*domain.DictationSession),
		ttl:      DefaultSessionTTL,
		sweep:    DefaultSweepInterval,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background eviction loop.
func (s *DictationService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evictExpired()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the eviction loop and waits for it to exit.
func (s *DictationService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// StartSession creates a session and returns its id.
func (s *DictationService) StartSession(_ context.Context, language string) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &domain.DictationSession{
		ID:           id,
		Language:     language,
		LastActivity: time.Now(),
	}

	logger.Debug("Dictation session started: %s (%s)", id, language)
	return id, nil
}

// AppendSegment adds a transcript segment to a session.
func (s *DictationService) AppendSegment(_ context.Context, sessionID, segment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	session.Segments = append(session.Segments, segment)
	session.LastActivity = time.Now()
	return nil
}

// EndSession closes a session and returns the full transcript.
func (s *DictationService) EndSession(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)

	logger.Debug("Dictation session ended: %s (%d segments)", sessionID, len(session.Segments))
	return strings.Join(session.Segments, " "), nil
}

// ActiveSessions reports how many sessions are currently held.
func (s *DictationService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictExpired drops sessions idle past the TTL.
func (s *DictationService) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			logger.Debug("Dictation session expired: %s", id)
		}
	}
}
