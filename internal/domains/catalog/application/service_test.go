package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/memory"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

func newCatalogService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	return NewService(repo, repo), repo
}

func seedProduct(t *testing.T, svc *Service, name string, price float64, stock int) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(0, name, decimal.NewFromFloat(price), stock)
	require.NoError(t, err)
	saved, err := svc.SaveProduct(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestSaveProduct_RejectsInvalid(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.SaveProduct(context.Background(), &domain.Product{Name: " ", Price: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestSearchProducts_BlankTermListsAll(t *testing.T) {
	svc, _ := newCatalogService(t)
	seedProduct(t, svc, "Kayak", 275, 10)
	seedProduct(t, svc, "Lifejacket", 48.95, 5)

	all, err := svc.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)
	require.Len(t, all, 2)

	matched, err := svc.SearchProducts(context.Background(), "kayak")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "Kayak", matched[0].Name)
}

func TestReserve_DecrementsAndGuards(t *testing.T) {
	svc, _ := newCatalogService(t)
	product := seedProduct(t, svc, "Kayak", 275, 3)
	ctx := context.Background()

	require.NoError(t, svc.Reserve(ctx, product.ID, 2))
	available, err := svc.Available(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, available)

	err = svc.Reserve(ctx, product.ID, 2)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	// Failed reserve leaves stock untouched.
	available, err = svc.Available(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, available)

	require.NoError(t, svc.Release(ctx, product.ID, 2))
	available, err = svc.Available(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 3, available)
}

func TestReserve_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newCatalogService(t)
	product := seedProduct(t, svc, "Kayak", 275, 3)

	err := svc.Reserve(context.Background(), product.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	err = svc.Release(context.Background(), product.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}
