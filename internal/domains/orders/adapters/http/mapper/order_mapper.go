package mapper

import (
	"time"

	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
)

// Shipping is the transport-layer delivery address.
type Shipping struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Zip     string `json:"zip,omitempty"`
}

// Line is the transport-layer order line shape with the frozen unit price.
type Line struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// Order is the transport-layer order shape.
type Order struct {
	ID        int64    `json:"id"`
	Status    string   `json:"status"`
	Shipping  Shipping `json:"shipping"`
	Lines     []Line   `json:"lines"`
	Total     string   `json:"total"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// ToDomainShipping converts the transport shipping block.
func ToDomainShipping(s Shipping) ordersdomain.ShippingInfo {
	return ordersdomain.ShippingInfo{Address: s.Address, City: s.City, Zip: s.Zip}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:     order.ID,
		Status: string(order.Status),
		Shipping: Shipping{
			Address: order.Shipping.Address,
			City:    order.Shipping.City,
			Zip:     order.Shipping.Zip,
		},
		Lines: make([]Line, 0, len(order.Lines)),
		Total: order.Total.StringFixed(2),
	}
	if !order.CreatedAt.IsZero() {
		out.CreatedAt = order.CreatedAt.UTC().Format(time.RFC3339)
	}
	for _, line := range order.Lines {
		out.Lines = append(out.Lines, Line{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal().StringFixed(2),
		})
	}
	return out
}

// FromDomainOrderList maps a list of orders.
func FromDomainOrderList(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
