package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State identifies the session's position in the conversation state machine.
// The flow package owns the full set of values; the store treats it as opaque.
type State string

var ErrNotFound = errors.New("session not found")

// Session is one user's in-progress conversation.
type Session struct {
	ID           string            `json:"session_id"`
	DisplayName  string            `json:"display_name"`
	State        State             `json:"state"`
	Context      map[string]string `json:"context"`
	LastActiveAt time.Time         `json:"last_active_at"`
}

// Store owns all live sessions. Handlers never touch the map directly;
// every mutation goes through the store so concurrent requests for the
// same id cannot corrupt shared state.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	timeout  time.Duration
	entry    State
	onExpire func(*Session)
}

// NewStore creates a session store. entryState is the state assigned to
// freshly created sessions; timeout is the inactivity expiry threshold.
func NewStore(entryState State, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = time.Hour
	}
	return &Store{
		sessions: make(map[string]*Session),
		timeout:  timeout,
		entry:    entryState,
	}
}

func (s *Store) SetExpireHook(hook func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = hook
}

// Create allocates a new session for the given display name and returns it.
func (s *Store) Create(displayName string) *Session {
	now := time.Now().UTC()
	sess := &Session{
		ID:           uuid.NewString(),
		DisplayName:  displayName,
		State:        s.entry,
		Context:      make(map[string]string),
		LastActiveAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return clone(sess)
}

// Get returns the session and refreshes its activity timestamp. Expiry is
// the janitor's job; a stale-but-present session is still returned.
func (s *Store) Get(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	sess.LastActiveAt = time.Now().UTC()
	return clone(sess), nil
}

// UpdateState moves the session to newState and merges patch into its
// context. Keys absent from patch are left untouched. Unknown ids are a
// normal client condition (stale tab, expired session) and are ignored.
func (s *Store) UpdateState(sessionID string, newState State, patch map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	sess.State = newState
	for k, v := range patch {
		sess.Context[k] = v
	}
	sess.LastActiveAt = time.Now().UTC()
}

// Delete removes the session. Idempotent.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// ActiveCount returns the number of live sessions.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SweepExpired removes every session whose inactivity age exceeds the
// timeout. Safe to run concurrently with request handling: a session
// touched mid-sweep has a fresh timestamp and is skipped.
func (s *Store) SweepExpired() int {
	now := time.Now().UTC()
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActiveAt) < s.timeout {
			continue
		}
		expired = append(expired, clone(sess))
		delete(s.sessions, id)
	}
	hook := s.onExpire
	s.mu.Unlock()

	if hook != nil {
		for _, sess := range expired {
			hook(sess)
		}
	}
	return len(expired)
}

// StartJanitor sweeps expired sessions on a ticker until ctx is done.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepExpired()
			}
		}
	}()
}

func clone(sess *Session) *Session {
	c := *sess
	c.Context = make(map[string]string, len(sess.Context))
	for k, v := range sess.Context {
		c.Context[k] = v
	}
	return &c
}
