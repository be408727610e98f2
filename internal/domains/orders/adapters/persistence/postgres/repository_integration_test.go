//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	"github.com/sportsstore/go-gin-store-server/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func buildOrder(t *testing.T, customer string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customer,
		domain.ShippingInfo{Address: "1 Main St", City: "Springfield", Zip: "12345"},
		[]domain.Line{
			{ProductID: 2, ProductName: "Corner Flags", UnitPrice: decimal.NewFromFloat(15.00), Quantity: 1},
			{ProductID: 1, ProductName: "Soccer Ball", UnitPrice: decimal.NewFromFloat(10.00), Quantity: 2},
		})
	require.NoError(t, err)
	return order
}

func TestRepository_CreateAndGetPreservesLineOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(t, "user:42"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user:42", fetched.Customer)
	assert.Equal(t, domain.StatusConfirmed, fetched.Status)
	assert.Equal(t, "35.00", fetched.Total.StringFixed(2))
	require.Len(t, fetched.Lines, 2)
	// Cart order, not product id order.
	assert.Equal(t, "Corner Flags", fetched.Lines[0].ProductName)
	assert.Equal(t, "Soccer Ball", fetched.Lines[1].ProductName)
	assert.Equal(t, "15.00", fetched.Lines[0].UnitPrice.StringFixed(2))
}

func TestRepository_ListByCustomerAndStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, buildOrder(t, "user:42"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, buildOrder(t, "session:s1"))
	require.NoError(t, err)

	mine, err := repo.ListByCustomer(ctx, "user:42")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	shipped, err := repo.UpdateStatus(ctx, first.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)

	byStatus, err := repo.ListByStatus(ctx, domain.StatusShipped)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, first.ID, byStatus[0].ID)
}

func TestRepository_MissingOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.UpdateStatus(ctx, 999, domain.StatusShipped)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
