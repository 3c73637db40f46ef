package simulation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

// Session is one caller's working batch and its latest result.
type Session struct {
	ID         string                 `json:"id"`
	Params     models.BatchParameters `json:"params"`
	LastResult *models.ResultSummary  `json:"last_result,omitempty"`
	InFlight   bool                   `json:"in_flight"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func (s *Session) snapshot() Session {
	out := *s
	out.Params = s.Params.Clone()
	if s.LastResult != nil {
		r := *s.LastResult
		r.Params = r.Params.Clone()
		out.LastResult = &r
	}
	return out
}

// SessionManager keeps sessions in memory, keyed by ID.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	now      func() time.Time
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create stores a new session around params and returns its snapshot.
func (sm *SessionManager) Create(params models.BatchParameters) Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ts := sm.now()
	s := &Session{
		ID:        uuid.NewString(),
		Params:    params.Clone(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	sm.sessions[s.ID] = s
	return s.snapshot()
}

// Get returns a snapshot of the session.
func (sm *SessionManager) Get(id string) (Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s.snapshot(), nil
}

// Update applies fn to the session's parameters under the write lock.
// When fn fails the parameters are left as they were.
func (sm *SessionManager) Update(id string, fn func(*models.BatchParameters) error) (Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	params := s.Params.Clone()
	if err := fn(&params); err != nil {
		return Session{}, err
	}
	s.Params = params
	s.UpdatedAt = sm.now()
	return s.snapshot(), nil
}

// Begin marks a valuation as running and returns the parameters captured
// for it. A session allows one valuation at a time.
func (sm *SessionManager) Begin(id string) (models.BatchParameters, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[id]
	if !ok {
		return models.BatchParameters{}, ErrSessionNotFound
	}
	if s.InFlight {
		return models.BatchParameters{}, ErrValuationInFlight
	}
	s.InFlight = true
	return s.Params.Clone(), nil
}

// Finish clears the in-flight mark and records result. Sessions deleted
// while the valuation ran are ignored.
func (sm *SessionManager) Finish(id string, result models.ResultSummary) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[id]
	if !ok {
		return
	}
	s.InFlight = false
	s.LastResult = &result
	s.UpdatedAt = sm.now()
}

// Abort clears the in-flight mark without recording a result.
func (sm *SessionManager) Abort(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[id]; ok {
		s.InFlight = false
	}
}

// Delete removes a session.
func (sm *SessionManager) Delete(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
