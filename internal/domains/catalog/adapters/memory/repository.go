package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Ledger     = (*Repository)(nil)
)

// Repository is an in-memory catalog adapter. The mutex makes the ledger's
// check-and-decrement a critical section, so reservations are race-free.
type Repository struct {
	mu         sync.RWMutex
	products   map[int64]*domain.Product
	categories map[int64]*domain.Category
	nextID     int64
}

func NewRepository() *Repository {
	return &Repository{
		products:   map[int64]*domain.Product{},
		categories: map[int64]*domain.Category{},
	}
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneProduct(product)
	return clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*domain.Product) bool { return true }), nil
}

func (r *Repository) ListByCategory(_ context.Context, categoryID int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *Repository) Search(_ context.Context, term string) ([]*domain.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
	}), nil
}

func (r *Repository) ListInStock(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *domain.Product) bool { return p.StockQuantity > 0 }), nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.products[clone.ID] = clone
	out := cloneProduct(clone)
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// SaveCategory seeds a category; used by wiring and tests.
func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[clone.ID] = &clone
	return nil
}

// Reserve checks and decrements stock under the write lock.
func (r *Repository) Reserve(_ context.Context, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return ports.ErrNotFound
	}
	if product.StockQuantity < quantity {
		return ports.ErrInsufficientStock
	}
	product.StockQuantity -= quantity
	return nil
}

// Release increments stock; no upper bound is enforced.
func (r *Repository) Release(_ context.Context, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return ports.ErrNotFound
	}
	product.StockQuantity += quantity
	return nil
}

func (r *Repository) Available(_ context.Context, productID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	return product.StockQuantity, nil
}

func (r *Repository) collect(match func(*domain.Product) bool) []*domain.Product {
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if match(product) {
			list = append(list, cloneProduct(product))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &clone
}
