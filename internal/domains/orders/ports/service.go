package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
)

var (
	// ErrEmptyCart rejects a checkout whose cart holds no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is the class matched by errors.Is for any
	// InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError names the first product whose reservation failed.
// By then every earlier reservation of the checkout has been released.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CheckoutInput carries everything PlaceOrder needs. Customer is the cart
// identity key of the buyer.
type CheckoutInput struct {
	Customer string              `json:"customer"`
	Shipping domain.ShippingInfo `json:"shipping"`
}

// Service exposes the checkout and order management use cases.
type Service interface {
	// PlaceOrder runs the whole checkout: price the cart, reserve stock per
	// line, persist the order atomically, clear the cart. Any failure after a
	// reservation releases every unit already taken.
	PlaceOrder(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customer string) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
}
