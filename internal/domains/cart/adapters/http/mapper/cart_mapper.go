package mapper

import (
	cartdomain "github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
)

// Line is the transport-layer cart line shape.
type Line struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PricedLine is a cart line enriched with catalog data for display.
type PricedLine struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

// Cart is the renderable cart view with its total.
type Cart struct {
	Lines []PricedLine `json:"lines"`
	Total string       `json:"total"`
}

// Shortage reports a line whose quantity exceeds available stock.
type Shortage struct {
	ProductID int64 `json:"productId"`
	Requested int   `json:"requested"`
	Available int   `json:"available"`
}

// FromDomainLine converts a domain cart line to the transport representation.
func FromDomainLine(line *cartdomain.Line) Line {
	if line == nil {
		return Line{}
	}
	return Line{ID: line.ID, ProductID: line.ProductID, Quantity: line.Quantity}
}

// FromDomainLineList maps a list of cart lines.
func FromDomainLineList(lines []*cartdomain.Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, FromDomainLine(line))
	}
	return out
}

// FromView converts the priced cart view to the transport representation.
func FromView(view *cartports.View) Cart {
	if view == nil {
		return Cart{Lines: []PricedLine{}, Total: "0.00"}
	}
	cart := Cart{Lines: make([]PricedLine, 0, len(view.Lines)), Total: view.Total.StringFixed(2)}
	for _, lv := range view.Lines {
		cart.Lines = append(cart.Lines, PricedLine{
			ID:          lv.Line.ID,
			ProductID:   lv.Line.ProductID,
			ProductName: lv.Name,
			Quantity:    lv.Line.Quantity,
			UnitPrice:   lv.UnitPrice.StringFixed(2),
			Subtotal:    lv.Subtotal.StringFixed(2),
		})
	}
	return cart
}

// FromShortageList maps validation shortages.
func FromShortageList(shortages []cartports.Shortage) []Shortage {
	out := make([]Shortage, 0, len(shortages))
	for _, s := range shortages {
		out = append(out, Shortage{ProductID: s.ProductID, Requested: s.Requested, Available: s.Available})
	}
	return out
}
