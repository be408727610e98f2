package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sportsstore/go-gin-store-server/internal/domains/users/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Delete revokes the user's sessions before removing the account, and keeps
// the account when revocation fails so no live token outlives its user.
func (s *Service) Delete(ctx context.Context, username string) error {
	if err := s.sessions.DeleteForUser(ctx, username); err != nil {
		return err
	}
	return s.repo.Delete(ctx, username)
}

func (s *Service) Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error) {
	if updated == nil {
		return nil, errors.New("user is nil")
	}
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if err := updated.SetUsername(username); err != nil {
		return nil, mapError(err)
	}
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, updated)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Login opens a fresh session for valid credentials. Tokens are random, not
// derived from the username, so holding a token proves nothing beyond the
// login that minted it.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, "", mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, "", mapError(ports.ErrInvalidCredentials)
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", mapError(ports.ErrInvalidCredentials)
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.Username); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a live session token to its user.
func (s *Service) Resolve(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrSessionNotFound)
		}
		return nil, err
	}
	return user, nil
}

var _ ports.Service = (*Service)(nil)
