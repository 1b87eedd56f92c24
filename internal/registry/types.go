package registry

import (
	"context"
	"time"
)

// User is one verified (display name, mobile) pair.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Mobile      string    `json:"mobile"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store durably records users who completed phone verification.
type Store interface {
	Register(ctx context.Context, displayName, mobile string) (string, error)
	Close() error
}
