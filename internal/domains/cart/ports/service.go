package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the slice of the catalog the cart cares about.
type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// Catalog resolves products for add-to-cart validation, pricing, and the
// advisory stock pre-check. Implementations return ErrProductNotFound for
// unknown ids.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// LineView is a cart line enriched with catalog data for display.
type LineView struct {
	Line      domain.Line
	Name      string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// View is the renderable cart: lines in insertion order plus the total.
type View struct {
	Lines []LineView
	Total decimal.Decimal
}

// Shortage names a line whose quantity exceeds currently available stock.
// Advisory only: stock may change before checkout, where the ledger reserve
// remains the authoritative guard.
type Shortage struct {
	ProductID int64
	Requested int
	Available int
}

// Service exposes the cart use cases to adapters. Line mutations are scoped
// to the owner: a line belonging to another identity behaves as if it did not
// exist.
type Service interface {
	AddLine(ctx context.Context, owner domain.Identity, productID int64, quantity int) (*domain.Line, error)
	SetQuantity(ctx context.Context, owner domain.Identity, lineID int64, quantity int) (*domain.Line, error)
	RemoveLine(ctx context.Context, owner domain.Identity, lineID int64) error
	LinesFor(ctx context.Context, owner domain.Identity) ([]*domain.Line, error)
	Clear(ctx context.Context, owner domain.Identity) error
	ViewCart(ctx context.Context, owner domain.Identity) (*View, error)
	Validate(ctx context.Context, owner domain.Identity) ([]Shortage, error)
	Merge(ctx context.Context, session domain.Identity, user domain.Identity) error
}
