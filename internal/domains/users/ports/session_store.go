package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound marks a token that is unknown or has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists login sessions keyed by token.
type SessionStore interface {
	Save(ctx context.Context, token, username string) error
	// Resolve returns the username behind a live token, ErrSessionNotFound otherwise.
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	// DeleteForUser revokes every session of one user.
	DeleteForUser(ctx context.Context, username string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _, _ string) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (string, error) {
	return "", ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error        { return nil }
func (noopSessionStore) DeleteForUser(_ context.Context, _ string) error { return nil }
