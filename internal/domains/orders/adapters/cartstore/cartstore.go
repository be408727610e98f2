package cartstore

import (
	"context"

	cartdomain "github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

var _ ordersports.CartStore = (*Adapter)(nil)

// Adapter satisfies the checkout's cart port with the cart service. The
// orders side addresses carts by identity key, so the adapter parses the key
// back into a cart identity.
type Adapter struct {
	carts cartports.Service
}

func New(carts cartports.Service) *Adapter {
	return &Adapter{carts: carts}
}

func (a *Adapter) LinesFor(ctx context.Context, customer string) ([]ordersports.CartLine, error) {
	owner, err := cartdomain.ParseKey(customer)
	if err != nil {
		return nil, err
	}
	lines, err := a.carts.LinesFor(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]ordersports.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, ordersports.CartLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out, nil
}

func (a *Adapter) Clear(ctx context.Context, customer string) error {
	owner, err := cartdomain.ParseKey(customer)
	if err != nil {
		return err
	}
	return a.carts.Clear(ctx, owner)
}
