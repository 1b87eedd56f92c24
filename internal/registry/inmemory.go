package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a simple in-process registry for local/dev use.
type InMemoryStore struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Register(_ context.Context, displayName, mobile string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Mobile:      mobile,
		CreatedAt:   time.Now().UTC(),
	}
	s.users = append(s.users, u)
	return u.ID, nil
}

// Users returns a snapshot of registered users, oldest first.
func (s *InMemoryStore) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

func (s *InMemoryStore) Close() error { return nil }
