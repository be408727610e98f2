package ports

import (
	"context"

	"github.com/sportsstore/go-gin-store-server/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// Login checks credentials and opens a session, returning the user and
	// the fresh session token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	// Resolve maps a live session token back to its user.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
