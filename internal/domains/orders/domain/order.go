package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder      = errors.New("order has no lines")
	ErrInvalidCustomer = errors.New("order customer is invalid")
	ErrInvalidShipping = errors.New("shipping address is incomplete")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrFinalStatus     = errors.New("order status is final")
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Address string
	City    string
	Zip     string
}

func (s ShippingInfo) validate() error {
	if strings.TrimSpace(s.Address) == "" || strings.TrimSpace(s.City) == "" {
		return ErrInvalidShipping
	}
	return nil
}

// Line is one order position. UnitPrice is frozen at checkout time; later
// catalog price changes never alter a placed order.
type Line struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal is quantity times the frozen unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the checkout aggregate. Total is computed once from the frozen
// line prices when the order is built.
type Order struct {
	ID        int64
	Customer  string
	Status    Status
	Shipping  ShippingInfo
	Lines     []Line
	Total     decimal.Decimal
	CreatedAt time.Time
}

// NewOrder builds a confirmed order from priced lines.
func NewOrder(customer string, shipping ShippingInfo, lines []Line) (*Order, error) {
	if strings.TrimSpace(customer) == "" {
		return nil, ErrInvalidCustomer
	}
	if err := shipping.validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return &Order{
		Customer: customer,
		Status:   StatusConfirmed,
		Shipping: shipping,
		Lines:    lines,
		Total:    total,
	}, nil
}

// Transition moves the order to the next lifecycle state. Shipped and
// cancelled orders are final.
func (o *Order) Transition(next Status) error {
	if !ValidStatus(next) {
		return ErrInvalidStatus
	}
	if o.Status == StatusShipped || o.Status == StatusCancelled {
		return ErrFinalStatus
	}
	o.Status = next
	return nil
}
