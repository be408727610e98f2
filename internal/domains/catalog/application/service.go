package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

// Service orchestrates catalog browsing, product management, and the
// inventory ledger operations.
type Service struct {
	repo   ports.Repository
	ledger ports.Ledger
}

func NewService(repo ports.Repository, ledger ports.Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *Service) SearchProducts(ctx context.Context, term string) ([]*domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, term)
}

func (s *Service) ListInStock(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListInStock(ctx)
}

func (s *Service) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// Reserve atomically takes quantity units of stock for a checkout attempt.
func (s *Service) Reserve(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return mapError(ErrInvalidQuantity)
	}
	return s.ledger.Reserve(ctx, productID, quantity)
}

// Release returns quantity units, compensating a failed checkout.
func (s *Service) Release(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return mapError(ErrInvalidQuantity)
	}
	return s.ledger.Release(ctx, productID, quantity)
}

func (s *Service) Available(ctx context.Context, productID int64) (int, error) {
	return s.ledger.Available(ctx, productID)
}

var _ ports.Service = (*Service)(nil)
