package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart line adapter. The write lock makes AddLine
// a single critical section, so concurrent adds for the same (owner, product)
// collapse into one line.
type Repository struct {
	mu     sync.RWMutex
	lines  map[int64]*domain.Line
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{lines: map[int64]*domain.Line{}}
}

func (r *Repository) LinesFor(_ context.Context, owner domain.Identity) ([]*domain.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Line
	for _, line := range r.lines {
		if line.Owner == owner {
			clone := *line
			list = append(list, &clone)
		}
	}
	// Line ids are monotonic, so id order is insertion order.
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) FindLine(_ context.Context, owner domain.Identity, productID int64) (*domain.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	line := r.findLocked(owner, productID)
	if line == nil {
		return nil, ports.ErrLineNotFound
	}
	clone := *line
	return &clone, nil
}

func (r *Repository) GetLine(_ context.Context, lineID int64) (*domain.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	line, ok := r.lines[lineID]
	if !ok {
		return nil, ports.ErrLineNotFound
	}
	clone := *line
	return &clone, nil
}

func (r *Repository) AddLine(_ context.Context, owner domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.findLocked(owner, productID); existing != nil {
		existing.Quantity += quantity
		clone := *existing
		return &clone, nil
	}
	line, err := domain.NewLine(owner, productID, quantity)
	if err != nil {
		return nil, err
	}
	r.nextID++
	line.ID = r.nextID
	r.lines[line.ID] = line
	clone := *line
	return &clone, nil
}

func (r *Repository) SetQuantity(_ context.Context, lineID int64, quantity int) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[lineID]
	if !ok {
		return nil, ports.ErrLineNotFound
	}
	line.Quantity = quantity
	clone := *line
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[lineID]; !ok {
		return ports.ErrLineNotFound
	}
	delete(r.lines, lineID)
	return nil
}

func (r *Repository) DeleteByOwner(_ context.Context, owner domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, line := range r.lines {
		if line.Owner == owner {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *Repository) Reassign(_ context.Context, lineID int64, owner domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[lineID]
	if !ok {
		return ports.ErrLineNotFound
	}
	line.Owner = owner
	return nil
}

func (r *Repository) findLocked(owner domain.Identity, productID int64) *domain.Line {
	for _, line := range r.lines {
		if line.Owner == owner && line.ProductID == productID {
			return line
		}
	}
	return nil
}
