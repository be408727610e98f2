package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

func TestReserve_ConcurrentCallersNeverOversell(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	product, err := domain.NewProduct(1, "Kayak", decimal.NewFromInt(275), 5)
	require.NoError(t, err)
	_, err = repo.Save(ctx, product)
	require.NoError(t, err)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Reserve(ctx, product.ID, 1)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
		} else {
			require.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	require.Equal(t, 5, granted)

	available, err := repo.Available(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 0, available)
}

func TestReserve_UnknownProduct(t *testing.T) {
	repo := NewRepository()
	err := repo.Reserve(context.Background(), 999, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
