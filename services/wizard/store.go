package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/utils/logger"
)

// Session is one wizard run. Sessions live only in process memory; a
// restart discards all progress.
type Session struct {
	ID        string    `json:"id"`
	Step      Step      `json:"step"`
	Context   Context   `json:"context"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ErrSessionNotFound struct{}

func (e ErrSessionNotFound) Error() string { return "wizard session not found or expired" }

// Store holds all live sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore builds a session store with the configured TTL.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      config.WizardConfig().SessionTTL,
	}
}

// Create starts a new session at the first step.
func (s *Store) Create() *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Step:      FirstStep(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound{}
	}
	return *session, nil
}

// Advance merges the update into the session context, validates that the
// current step has what it needs, and moves to the next step.
func (s *Store) Advance(id string, update ContextUpdate) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound{}
	}

	session.Context.Merge(update)
	session.UpdatedAt = time.Now()

	if err := ValidateAdvance(session.Step, &session.Context); err != nil {
		return *session, err
	}

	next, err := Next(session.Step)
	if err != nil {
		return *session, err
	}
	session.Step = next
	return *session, nil
}

// Back moves to the previous step. Context gathered so far is preserved.
func (s *Store) Back(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound{}
	}

	prev, err := Prev(session.Step)
	if err != nil {
		return *session, err
	}
	session.Step = prev
	session.UpdatedAt = time.Now()
	return *session, nil
}

// Skip jumps over the current step when it is optional.
func (s *Store) Skip(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound{}
	}

	if !Skippable(session.Step) {
		return *session, ErrStepNotSkippable{Step: session.Step}
	}

	next, err := Next(session.Step)
	if err != nil {
		return *session, err
	}
	session.Step = next
	session.UpdatedAt = time.Now()
	return *session, nil
}

// Reset clears the whole context and returns to the first step.
func (s *Store) Reset(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound{}
	}

	session.Step = FirstStep()
	session.Context = Context{}
	session.UpdatedAt = time.Now()
	return *session, nil
}

// Sweep drops sessions idle past their TTL. Run periodically by the cron
// scheduler.
func (s *Store) Sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Infof("swept %d expired wizard sessions", removed)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
