package mapper

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
)

// Product is the transport-layer shape served by the product handlers.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description,omitempty"`
	Price         string   `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	CategoryID    int64    `json:"categoryId,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// Category is the transport-layer category shape.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(p Product) (*catalogdomain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, err
	}
	product, err := catalogdomain.NewProduct(p.ID, p.Name, price, p.StockQuantity)
	if err != nil {
		return nil, err
	}
	product.Description = p.Description
	product.CategoryID = p.CategoryID
	product.ImageURLs = p.ImageURLs
	return product, nil
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.StringFixed(2),
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		ImageURLs:     product.ImageURLs,
	}
}

// FromDomainProductList maps a list of products.
func FromDomainProductList(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, FromDomainProduct(product))
	}
	return out
}

// FromDomainCategoryList maps a list of categories.
func FromDomainCategoryList(categories []*catalogdomain.Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, category := range categories {
		out = append(out, Category{ID: category.ID, Name: category.Name})
	}
	return out
}
