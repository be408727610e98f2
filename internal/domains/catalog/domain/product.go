package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
	ErrNegativeStock = errors.New("stock quantity must not be negative")
)

// Product is the catalog aggregate. StockQuantity is only mutated through
// the ledger reserve/release operations and admin product updates.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    int64
	ImageURLs     []string
}

// NewProduct validates and constructs a catalog product.
func NewProduct(id int64, name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	product := &Product{
		ID:            id,
		Name:          strings.TrimSpace(name),
		Price:         price,
		StockQuantity: stockQuantity,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// InStock reports whether the product currently covers the requested quantity.
// The answer is advisory; the ledger reserve operation is the authoritative check.
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// Category groups products for browsing.
type Category struct {
	ID   int64
	Name string
}
