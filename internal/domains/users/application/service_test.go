package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/memory"
	"github.com/sportsstore/go-gin-store-server/internal/domains/users/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"
)

func newUserService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewRepository(), memory.NewSessionStore(0))
}

func registerUser(t *testing.T, svc *Service, username, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, username, password)
	require.NoError(t, err)
	saved, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService(t)
	registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	user, token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, token)

	resolved, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newUserService(t)
	registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)

	// Unknown users fail the same way; no account enumeration.
	_, _, err = svc.Login(ctx, "ghost", "secret")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc := newUserService(t)
	registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	svc := newUserService(t)
	_, err := svc.Register(context.Background(), &domain.User{Username: "bob", Password: "abc"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestUpdate_KeepsUsernameAndID(t *testing.T) {
	svc := newUserService(t)
	saved := registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	updated := &domain.User{Username: "renamed", Password: "secret"}
	require.NoError(t, updated.UpdateProfile("Alice", "Smith", "alice@example.com", "555"))
	result, err := svc.Update(ctx, "alice", updated)
	require.NoError(t, err)
	require.Equal(t, saved.ID, result.ID)
	require.Equal(t, "alice", result.Username)
	require.Equal(t, "alice@example.com", result.Email)
}

func TestDelete_RevokesSessions(t *testing.T) {
	svc := newUserService(t)
	registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))
	_, err = svc.GetByUsername(ctx, "alice")
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = svc.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrAuthentication)
}

// failingSessions refuses to revoke sessions for any user.
type failingSessions struct {
	ports.SessionStore
}

func (failingSessions) DeleteForUser(context.Context, string) error {
	return errors.New("session store offline")
}

func TestDelete_SessionRevocationFailureKeepsUser(t *testing.T) {
	svc := NewService(memory.NewRepository(), failingSessions{SessionStore: memory.NewSessionStore(0)})
	registerUser(t, svc, "alice", "secret")
	ctx := context.Background()

	require.Error(t, svc.Delete(ctx, "alice"))

	// The account survives, so no live token can outlast its user.
	user, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}
