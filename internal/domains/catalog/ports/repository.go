package ports

import (
	"context"
	"errors"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned by Reserve when the product does not
	// cover the requested quantity; stock is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists catalog products and categories.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	ListInStock(ctx context.Context) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// Ledger owns per-product stock counts. Reserve must be race-free under
// concurrent callers for the same product: two reservations racing for the
// last unit must not both succeed.
type Ledger interface {
	// Reserve atomically checks stock >= quantity and decrements; returns
	// ErrInsufficientStock (stock unchanged) when the check fails.
	Reserve(ctx context.Context, productID int64, quantity int) error
	// Release increments stock, compensating a failed multi-item checkout.
	Release(ctx context.Context, productID int64, quantity int) error
	// Available is a point-in-time read; no reservation is held on return.
	Available(ctx context.Context, productID int64) (int, error)
}
