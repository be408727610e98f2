package catalog

import (
	"context"
	"errors"
	"fmt"

	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

var _ cartports.Catalog = (*Adapter)(nil)

// Adapter satisfies the cart's catalog port with the catalog service,
// translating catalog errors into the cart's vocabulary.
type Adapter struct {
	catalog catalogports.Service
}

func New(catalog catalogports.Service) *Adapter {
	return &Adapter{catalog: catalog}
}

func (a *Adapter) GetProduct(ctx context.Context, id int64) (*cartports.Product, error) {
	product, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", cartports.ErrProductNotFound, id)
		}
		return nil, err
	}
	return &cartports.Product{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
	}, nil
}
