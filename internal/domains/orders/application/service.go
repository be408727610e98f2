package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

// Service orchestrates checkout and order management. Checkout reserves
// stock and persists the order inside one atomic unit: at no point can an
// order exist whose stock was never taken, a failed checkout leaves stock
// exactly as it found it, and a crash mid-checkout leaves no partial
// decrement behind when the backing stores are transactional.
type Service struct {
	repo    ports.Repository
	ledger  ports.Ledger
	catalog ports.Catalog
	carts   ports.CartStore
	atomic  ports.Atomic
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAtomic makes reserve-and-persist run under the given transaction
// runner instead of relying on compensating releases alone.
func WithAtomic(atomic ports.Atomic) Option {
	return func(s *Service) { s.atomic = atomic }
}

func NewService(repo ports.Repository, ledger ports.Ledger, catalog ports.Catalog, carts ports.CartStore, opts ...Option) *Service {
	s := &Service{repo: repo, ledger: ledger, catalog: catalog, carts: carts}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder runs the checkout. Reservations happen in ascending product id
// order so concurrent checkouts over the same products never deadlock, and
// every failure path releases exactly the units this checkout reserved.
func (s *Service) PlaceOrder(ctx context.Context, input ports.CheckoutInput) (*domain.Order, error) {
	cartLines, err := s.carts.LinesFor(ctx, input.Customer)
	if err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, ports.ErrEmptyCart
	}

	// Freeze names and prices now; catalog changes after this point do not
	// affect the order.
	orderLines := make([]domain.Line, 0, len(cartLines))
	for _, cl := range cartLines {
		product, err := s.catalog.GetProduct(ctx, cl.ProductID)
		if err != nil {
			return nil, err
		}
		orderLines = append(orderLines, domain.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    cl.Quantity,
		})
	}

	order, err := domain.NewOrder(input.Customer, input.Shipping, orderLines)
	if err != nil {
		return nil, mapError(err)
	}

	// Reservations and the order row commit together: under a transactional
	// backend a crash between them rolls both back, so stock can never stay
	// decremented without a persisted order. The compensating releases cover
	// the mid-sequence shortage path and non-transactional backends.
	var created *domain.Order
	err = s.runAtomically(ctx, func(ctx context.Context) error {
		reserved, err := s.reserveAll(ctx, order.Lines)
		if err != nil {
			s.releaseAll(ctx, reserved)
			return err
		}
		created, err = s.repo.Create(ctx, order)
		if err != nil {
			s.releaseAll(ctx, reserved)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is committed; a cart that fails to clear is an annoyance,
	// not a reason to fail the checkout.
	if err := s.carts.Clear(ctx, input.Customer); err != nil {
		s.logWarn(ctx, "failed to clear cart after checkout",
			slog.String("customer", input.Customer),
			slog.Int64("order.id", created.ID),
			slog.String("error", err.Error()))
	}
	return created, nil
}

// reserveAll takes stock line by line in ascending product id order and
// returns the lines actually reserved, whether or not it succeeded.
func (s *Service) reserveAll(ctx context.Context, lines []domain.Line) ([]domain.Line, error) {
	ordered := make([]domain.Line, len(lines))
	copy(ordered, lines)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	reserved := make([]domain.Line, 0, len(ordered))
	for _, line := range ordered {
		if err := s.ledger.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, ports.ErrInsufficientStock) {
				return reserved, &ports.InsufficientStockError{ProductID: line.ProductID}
			}
			return reserved, err
		}
		reserved = append(reserved, line)
	}
	return reserved, nil
}

// runAtomically defers to the configured transaction runner; without one the
// function runs directly and compensation is the only rollback mechanism.
func (s *Service) runAtomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.atomic == nil {
		return fn(ctx)
	}
	return s.atomic.RunAtomically(ctx, fn)
}

// releaseAll compensates reservations in reverse order. It runs on a context
// detached from cancellation so an aborted request still restores stock;
// context values survive, so releases inside a transaction stay in it.
func (s *Service) releaseAll(ctx context.Context, reserved []domain.Line) {
	ctx = context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		line := reserved[i]
		if err := s.ledger.Release(ctx, line.ProductID, line.Quantity); err != nil {
			s.logWarn(ctx, "failed to release reserved stock",
				slog.Int64("product.id", line.ProductID),
				slog.Int("quantity", line.Quantity),
				slog.String("error", err.Error()))
		}
	}
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCustomer(ctx context.Context, customer string) ([]*domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customer)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	return s.repo.ListByStatus(ctx, status)
}

// UpdateStatus validates the lifecycle transition against the stored order
// before persisting the new status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Transition(status); err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

var _ ports.Service = (*Service)(nil)
