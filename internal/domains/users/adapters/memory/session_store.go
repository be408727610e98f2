package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation with TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
}

type sessionEntry struct {
	username  string
	expiresAt time.Time
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{sessions: map[string]sessionEntry{}, ttl: ttl}
}

func (s *SessionStore) Save(_ context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{username: username, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ports.ErrSessionNotFound
	}
	return entry.username, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) DeleteForUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.sessions {
		if entry.username == username {
			delete(s.sessions, token)
		}
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
