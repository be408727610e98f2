package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

var (
	_ ordersports.Catalog = (*Adapter)(nil)
	_ ordersports.Ledger  = (*Adapter)(nil)
)

// Adapter satisfies the checkout's catalog and ledger ports with the catalog
// service, translating its errors into the orders vocabulary.
type Adapter struct {
	catalog catalogports.Service
}

func New(catalog catalogports.Service) *Adapter {
	return &Adapter{catalog: catalog}
}

func (a *Adapter) GetProduct(ctx context.Context, id int64) (*ordersports.Product, error) {
	product, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ordersports.ErrProductNotFound, id)
		}
		return nil, err
	}
	return &ordersports.Product{ID: product.ID, Name: product.Name, Price: product.Price}, nil
}

func (a *Adapter) Reserve(ctx context.Context, productID int64, quantity int) error {
	if err := a.catalog.Reserve(ctx, productID, quantity); err != nil {
		if errors.Is(err, catalogports.ErrInsufficientStock) {
			return fmt.Errorf("%w: product %d", ordersports.ErrInsufficientStock, productID)
		}
		return err
	}
	return nil
}

func (a *Adapter) Release(ctx context.Context, productID int64, quantity int) error {
	return a.catalog.Release(ctx, productID, quantity)
}
