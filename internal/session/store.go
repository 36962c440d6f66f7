// Package session keeps wizard states for HTTP clients in process memory.
// Nothing is persisted: a session is gone once its result is handed out,
// once it is abandoned, or once it sits idle past the TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// Session is a snapshot of one client's wizard.
type Session struct {
	ID        string       `json:"id"`
	State     wizard.State `json:"-"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Store is safe for concurrent use by HTTP handlers.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	// OnSize, if set, is called with the session count after every change.
	OnSize func(n int)
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a session at the Welcome step.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{ID: uuid.NewString(), State: wizard.New(), UpdatedAt: s.now()}
	s.sessions[sess.ID] = sess
	s.sizeChanged()
	return *sess
}

// Get returns the session or apperr.NotFound.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, notFound(id)
	}
	return *sess, nil
}

// Dispatch applies a to the session. When the action is rejected the stored
// state is left as it was and the returned Session reflects it.
func (s *Store) Dispatch(id string, a wizard.Action) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, notFound(id)
	}
	next, err := wizard.Apply(sess.State, a)
	if err != nil {
		return *sess, err
	}
	sess.State = next
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// Submit completes the wizard and calculates the result. The Complete
// transition is only committed when the calculator accepts the draft; in that
// case the session is discarded and the completed state returned. On
// InvalidInput the session stays on its last step so the field can be fixed.
func (s *Store) Submit(id string) (wizard.State, tdee.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return wizard.State{}, tdee.Result{}, notFound(id)
	}
	next, res, err := wizard.Finish(sess.State)
	if err != nil {
		sess.UpdatedAt = s.now()
		return sess.State, tdee.Result{}, err
	}

	delete(s.sessions, id)
	s.sizeChanged()
	return next, res, nil
}

// Delete abandons a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return notFound(id)
	}
	delete(s.sessions, id)
	s.sizeChanged()
	return nil
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.sizeChanged()
	}
	return removed
}

// Run sweeps every interval until ctx is done. onSweep, if non-nil, receives
// the count of each non-empty sweep.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// sizeChanged must be called with mu held.
func (s *Store) sizeChanged() {
	if s.OnSize != nil {
		s.OnSize(len(s.sessions))
	}
}

func notFound(id string) error {
	return apperr.New(apperr.NotFound, "wizard session "+id+" not found")
}
