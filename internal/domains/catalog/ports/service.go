package ports

import (
	"context"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
)

// Service exposes catalog and inventory use cases to adapters.
type Service interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, term string) ([]*domain.Product, error)
	ListInStock(ctx context.Context) ([]*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	Reserve(ctx context.Context, productID int64, quantity int) error
	Release(ctx context.Context, productID int64, quantity int) error
	Available(ctx context.Context, productID int64) (int, error)
}
