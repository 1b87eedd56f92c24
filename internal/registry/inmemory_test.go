package registry

import (
	"context"
	"testing"
)

func TestInMemoryRegister(t *testing.T) {
	s := NewInMemoryStore()
	id, err := s.Register(context.Background(), "Rohan", "+919876543210")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if id == "" {
		t.Fatalf("Register() returned empty id")
	}

	users := s.Users()
	if len(users) != 1 {
		t.Fatalf("Users() len = %d, want 1", len(users))
	}
	if users[0].DisplayName != "Rohan" || users[0].Mobile != "+919876543210" {
		t.Fatalf("unexpected user record: %+v", users[0])
	}
}

func TestFactoryDefaultsToInMemory(t *testing.T) {
	s, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*InMemoryStore); !ok {
		t.Fatalf("store = %T, want *InMemoryStore", s)
	}
}
