package ports

import (
	"context"
	"errors"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
)

var ErrLineNotFound = errors.New("cart line not found")

// Repository persists cart lines. Implementations must guarantee at most one
// line per (owner, product) pair even under concurrent AddLine calls for the
// same pair.
type Repository interface {
	// LinesFor returns the owner's lines in insertion order.
	LinesFor(ctx context.Context, owner domain.Identity) ([]*domain.Line, error)
	// FindLine locates the owner's line for a product, or ErrLineNotFound.
	FindLine(ctx context.Context, owner domain.Identity, productID int64) (*domain.Line, error)
	// GetLine loads a line by id, or ErrLineNotFound.
	GetLine(ctx context.Context, lineID int64) (*domain.Line, error)
	// AddLine creates the (owner, product) line or atomically increments the
	// quantity of an existing one.
	AddLine(ctx context.Context, owner domain.Identity, productID int64, quantity int) (*domain.Line, error)
	// SetQuantity overwrites a line's quantity; the caller ensures quantity > 0.
	SetQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Line, error)
	// Delete removes a line, returning ErrLineNotFound when absent.
	Delete(ctx context.Context, lineID int64) error
	// DeleteByOwner removes every line of the given identity.
	DeleteByOwner(ctx context.Context, owner domain.Identity) error
	// Reassign re-parents a line to a new owner without touching quantity.
	Reassign(ctx context.Context, lineID int64, owner domain.Identity) error
}
