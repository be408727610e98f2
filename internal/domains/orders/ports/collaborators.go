package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the catalog slice checkout needs: display name and the price
// frozen onto the order line.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Catalog resolves products referenced by cart lines at checkout time.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// Ledger reserves and releases stock. Reserve is all-or-nothing per product;
// Release compensates reservations of a checkout that failed partway.
type Ledger interface {
	Reserve(ctx context.Context, productID int64, quantity int) error
	Release(ctx context.Context, productID int64, quantity int) error
}

// CartLine is the cart slice checkout consumes.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// CartStore reads and clears the customer's cart around checkout. The
// customer key is the cart identity in its string form.
type CartStore interface {
	LinesFor(ctx context.Context, customer string) ([]CartLine, error)
	Clear(ctx context.Context, customer string) error
}

// Atomic runs fn so that every ledger and repository write inside either
// commits as one unit or leaves no trace, even across a process crash.
// Backends without transactions run fn directly and rely on the caller's
// compensating releases.
type Atomic interface {
	RunAtomically(ctx context.Context, fn func(ctx context.Context) error) error
}
