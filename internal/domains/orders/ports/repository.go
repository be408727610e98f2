package ports

import (
	"context"
	"errors"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrConflict is returned when persistence gives up after repeated
	// serialization failures; the checkout can be retried as a whole.
	ErrConflict = errors.New("order conflicts with a concurrent transaction")
)

// Repository persists order aggregates. Create must write the order and all
// of its lines in one transaction: a crash mid-write leaves no partial order.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customer string) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
}
