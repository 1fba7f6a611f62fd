package chat

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// entry pairs a session with the lock held for the whole of one turn.
type entry struct {
	mu      sync.Mutex
	session *chat.Session
}

// Service keeps sessions in memory and serialises turns per session.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	orch     *Orchestrator
}

// NewService bootstraps the in-memory registry around an orchestrator.
func NewService(orch *Orchestrator) *Service {
	return &Service{
		sessions: make(map[string]*entry),
		orch:     orch,
	}
}

// CreateSession provisions an anonymous session.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.NewSession(uuid.NewString(), s.orch.now())

	s.mu.Lock()
	s.sessions[session.ID] = &entry{session: session}
	s.mu.Unlock()

	return session.Clone(), nil
}

// GetSession returns a snapshot that shares nothing with the live session.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Submit runs one turn against the session. ok is false when text was blank.
func (s *Service) Submit(ctx context.Context, sessionID, text string, opts ...TurnOption) (Turn, bool, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return Turn{}, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	turn, ok := s.orch.RunTurn(ctx, e.session, text, opts...)
	return turn, ok, nil
}

// Reset clears the session and returns the fresh snapshot.
func (s *Service) Reset(_ context.Context, sessionID string) (chat.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s.orch.Reset(e.session)
	s.orch.log.Info("session reset", "session", sessionID)
	return e.session.Clone(), nil
}

// Summary aggregates the session's mood history as of now.
func (s *Service) Summary(_ context.Context, sessionID string) (Summary, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return Summary{}, err
	}

	e.mu.Lock()
	snapshot := e.session.Clone()
	e.mu.Unlock()

	return s.orch.Summarize(snapshot), nil
}

// DeleteSession discards a session. A turn already in flight finishes on its
// own copy of the entry.
func (s *Service) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// ListSessions returns the identifiers of live sessions in sorted order.
func (s *Service) ListSessions(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Service) lookup(sessionID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}
