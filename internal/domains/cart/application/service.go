package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
)

// Service orchestrates cart use cases: line mutations, pricing views, the
// advisory pre-checkout validation, and the login-time merge of an anonymous
// cart into a user cart.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	merges  keyedMutex
}

func NewService(repo ports.Repository, catalog ports.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// AddLine creates or increments the (owner, product) line after checking the
// product exists in the catalog.
func (s *Service) AddLine(ctx context.Context, owner domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	if _, err := domain.NewLine(owner, productID, quantity); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.AddLine(ctx, owner, productID, quantity)
}

// SetQuantity updates one of the owner's lines; a non-positive quantity
// deletes it and returns a nil line.
func (s *Service) SetQuantity(ctx context.Context, owner domain.Identity, lineID int64, quantity int) (*domain.Line, error) {
	line, err := s.ownedLine(ctx, owner, lineID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		if err := s.repo.Delete(ctx, line.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return s.repo.SetQuantity(ctx, line.ID, quantity)
}

// RemoveLine deletes one of the owner's lines; an absent line is not an error
// so double-submitted removals stay harmless.
func (s *Service) RemoveLine(ctx context.Context, owner domain.Identity, lineID int64) error {
	line, err := s.ownedLine(ctx, owner, lineID)
	if errors.Is(err, ports.ErrLineNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, line.ID); err != nil && !errors.Is(err, ports.ErrLineNotFound) {
		return err
	}
	return nil
}

// ownedLine loads a line and hides other shoppers' lines behind
// ErrLineNotFound, so sequential line ids reveal nothing across identities.
func (s *Service) ownedLine(ctx context.Context, owner domain.Identity, lineID int64) (*domain.Line, error) {
	if owner.IsZero() {
		return nil, mapError(domain.ErrInvalidIdentity)
	}
	line, err := s.repo.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.Owner.Key() != owner.Key() {
		return nil, ports.ErrLineNotFound
	}
	return line, nil
}

func (s *Service) LinesFor(ctx context.Context, owner domain.Identity) ([]*domain.Line, error) {
	if owner.IsZero() {
		return nil, mapError(domain.ErrInvalidIdentity)
	}
	return s.repo.LinesFor(ctx, owner)
}

// Clear deletes all lines for the identity; used after checkout and merge.
func (s *Service) Clear(ctx context.Context, owner domain.Identity) error {
	if owner.IsZero() {
		return mapError(domain.ErrInvalidIdentity)
	}
	return s.repo.DeleteByOwner(ctx, owner)
}

// ViewCart prices the cart with live catalog prices for display.
func (s *Service) ViewCart(ctx context.Context, owner domain.Identity) (*ports.View, error) {
	lines, err := s.LinesFor(ctx, owner)
	if err != nil {
		return nil, err
	}
	view := &ports.View{Lines: make([]ports.LineView, 0, len(lines))}
	priced := make([]domain.PricedLine, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		pl := domain.PricedLine{Quantity: line.Quantity, UnitPrice: product.Price}
		priced = append(priced, pl)
		view.Lines = append(view.Lines, ports.LineView{
			Line:      *line,
			Name:      product.Name,
			UnitPrice: product.Price,
			Subtotal:  pl.Subtotal(),
		})
	}
	view.Total = domain.Total(priced)
	return view, nil
}

// Validate reports lines whose quantity exceeds currently available stock.
// Advisory pre-check only; the ledger reserve at checkout is authoritative.
func (s *Service) Validate(ctx context.Context, owner domain.Identity) ([]ports.Shortage, error) {
	lines, err := s.LinesFor(ctx, owner)
	if err != nil {
		return nil, err
	}
	var shortages []ports.Shortage
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				shortages = append(shortages, ports.Shortage{ProductID: line.ProductID, Requested: line.Quantity})
				continue
			}
			return nil, err
		}
		if product.StockQuantity < line.Quantity {
			shortages = append(shortages, ports.Shortage{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: product.StockQuantity,
			})
		}
	}
	return shortages, nil
}

// Merge folds the anonymous session cart into the user cart at login:
// quantities merge into existing user lines, other lines are re-parented, and
// whatever still carries the session identity afterwards is deleted.
// Serialized per session identity so a double login cannot double-count, and
// idempotent: merging an already-empty session cart is a no-op.
func (s *Service) Merge(ctx context.Context, session domain.Identity, user domain.Identity) error {
	if session.Kind() != domain.IdentitySession || user.Kind() != domain.IdentityUser {
		return mapError(domain.ErrInvalidIdentity)
	}
	unlock := s.merges.lock(session.Key())
	defer unlock()

	lines, err := s.repo.LinesFor(ctx, session)
	if err != nil {
		return err
	}
	for _, line := range lines {
		existing, err := s.repo.FindLine(ctx, user, line.ProductID)
		switch {
		case err == nil:
			if _, err := s.repo.SetQuantity(ctx, existing.ID, existing.Quantity+line.Quantity); err != nil {
				return err
			}
			// Drop the session line as soon as its quantity is folded in, so
			// a merge that fails on a later line can be retried without
			// counting this one twice.
			if err := s.repo.Delete(ctx, line.ID); err != nil && !errors.Is(err, ports.ErrLineNotFound) {
				return err
			}
		case errors.Is(err, ports.ErrLineNotFound):
			if err := s.repo.Reassign(ctx, line.ID, user); err != nil {
				return err
			}
		default:
			return err
		}
	}
	// Cleanup of anything still tagged with the session identity.
	return s.repo.DeleteByOwner(ctx, session)
}

// keyedMutex serializes critical sections per string key.
type keyedMutex struct {
	locks sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	value, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

var _ ports.Service = (*Service)(nil)
