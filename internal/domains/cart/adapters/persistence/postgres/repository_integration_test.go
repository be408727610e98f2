//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	"github.com/sportsstore/go-gin-store-server/internal/platform/migrations"
)

func setupCartPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_AddLineUpsertsOnePerProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	owner, err := domain.SessionIdentity("sess-1")
	require.NoError(t, err)

	const adders = 8
	var wg sync.WaitGroup
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddLine(ctx, owner, 1, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := repo.LinesFor(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, adders, lines[0].Quantity)
	assert.Equal(t, owner, lines[0].Owner)
}

func TestRepository_ReassignAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	session, err := domain.SessionIdentity("sess-1")
	require.NoError(t, err)
	user, err := domain.UserIdentity(42)
	require.NoError(t, err)

	line, err := repo.AddLine(ctx, session, 1, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Reassign(ctx, line.ID, user))
	moved, err := repo.GetLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, user, moved.Owner)
	assert.Equal(t, 2, moved.Quantity)

	sessionLines, err := repo.LinesFor(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, sessionLines)

	require.NoError(t, repo.Delete(ctx, line.ID))
	assert.ErrorIs(t, repo.Delete(ctx, line.ID), ports.ErrLineNotFound)
}

func TestRepository_PurgeStaleSessions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	session, err := domain.SessionIdentity("sess-old")
	require.NoError(t, err)
	user, err := domain.UserIdentity(42)
	require.NoError(t, err)

	_, err = repo.AddLine(ctx, session, 1, 1)
	require.NoError(t, err)
	_, err = repo.AddLine(ctx, user, 1, 1)
	require.NoError(t, err)

	// Age the rows so a zero retention catches the session line.
	err = db.Exec("UPDATE cart_lines SET created_at = NOW() - INTERVAL '2 days'").Error
	require.NoError(t, err)

	purged, err := repo.PurgeStaleSessions(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	sessionLines, err := repo.LinesFor(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, sessionLines)
	userLines, err := repo.LinesFor(ctx, user)
	require.NoError(t, err)
	assert.Len(t, userLines, 1)
}
