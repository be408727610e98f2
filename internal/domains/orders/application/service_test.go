package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/memory"
	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

type fakeLedger struct {
	stock map[int64]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: map[int64]int{}}
}

func (f *fakeLedger) Reserve(_ context.Context, productID int64, quantity int) error {
	if f.stock[productID] < quantity {
		return ports.ErrInsufficientStock
	}
	f.stock[productID] -= quantity
	return nil
}

func (f *fakeLedger) Release(_ context.Context, productID int64, quantity int) error {
	f.stock[productID] += quantity
	return nil
}

type fakeProductCatalog struct {
	products map[int64]*ports.Product
}

func newFakeProductCatalog() *fakeProductCatalog {
	return &fakeProductCatalog{products: map[int64]*ports.Product{}}
}

func (f *fakeProductCatalog) GetProduct(_ context.Context, id int64) (*ports.Product, error) {
	if product, ok := f.products[id]; ok {
		clone := *product
		return &clone, nil
	}
	return nil, ports.ErrProductNotFound
}

type fakeCartStore struct {
	lines    map[string][]ports.CartLine
	clearErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: map[string][]ports.CartLine{}}
}

func (f *fakeCartStore) LinesFor(_ context.Context, customer string) ([]ports.CartLine, error) {
	return append([]ports.CartLine(nil), f.lines[customer]...), nil
}

func (f *fakeCartStore) Clear(_ context.Context, customer string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.lines, customer)
	return nil
}

// fakeAtomic tracks whether collaborators are invoked inside the unit it runs.
type fakeAtomic struct {
	active bool
	runs   int
}

func (f *fakeAtomic) RunAtomically(ctx context.Context, fn func(ctx context.Context) error) error {
	f.runs++
	f.active = true
	defer func() { f.active = false }()
	return fn(ctx)
}

type boundaryLedger struct {
	inner          ports.Ledger
	atomic         *fakeAtomic
	reservedInside bool
}

func (l *boundaryLedger) Reserve(ctx context.Context, productID int64, quantity int) error {
	l.reservedInside = l.atomic.active
	return l.inner.Reserve(ctx, productID, quantity)
}

func (l *boundaryLedger) Release(ctx context.Context, productID int64, quantity int) error {
	return l.inner.Release(ctx, productID, quantity)
}

type boundaryRepo struct {
	ports.Repository
	atomic        *fakeAtomic
	createdInside bool
}

func (r *boundaryRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.createdInside = r.atomic.active
	return r.Repository.Create(ctx, order)
}

type checkoutFixture struct {
	svc     *Service
	repo    *memory.Repository
	ledger  *fakeLedger
	catalog *fakeProductCatalog
	carts   *fakeCartStore
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		repo:    memory.NewRepository(),
		ledger:  newFakeLedger(),
		catalog: newFakeProductCatalog(),
		carts:   newFakeCartStore(),
	}
	f.svc = NewService(f.repo, f.ledger, f.catalog, f.carts)
	return f
}

func (f *checkoutFixture) seedProduct(id int64, name string, price float64, stock int) {
	f.catalog.products[id] = &ports.Product{ID: id, Name: name, Price: decimal.NewFromFloat(price)}
	f.ledger.stock[id] = stock
}

func checkout(customer string) ports.CheckoutInput {
	return ports.CheckoutInput{
		Customer: customer,
		Shipping: domain.ShippingInfo{Address: "1 Main St", City: "Springfield", Zip: "12345"},
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.ErrorIs(t, err, ports.ErrEmptyCart)
}

func TestPlaceOrder_Succeeds(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Soccer Ball", 10.00, 5)
	f.seedProduct(2, "Corner Flags", 15.00, 5)
	f.carts.lines["user:42"] = []ports.CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	order, err := f.svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, order.Status)
	require.Equal(t, "35.00", order.Total.StringFixed(2))
	require.Equal(t, "user:42", order.Customer)
	require.Len(t, order.Lines, 2)
	require.Equal(t, "Soccer Ball", order.Lines[0].ProductName)

	require.Equal(t, 3, f.ledger.stock[1])
	require.Equal(t, 4, f.ledger.stock[2])
	require.Empty(t, f.carts.lines["user:42"])

	// Later catalog price changes do not touch the persisted order.
	f.catalog.products[1].Price = decimal.NewFromFloat(99.99)
	stored, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, "10.00", stored.Lines[0].UnitPrice.StringFixed(2))
}

func TestPlaceOrder_InsufficientStockLeavesEverythingIntact(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Kayak", 275, 1)
	f.carts.lines["session:s1"] = []ports.CartLine{{ProductID: 1, Quantity: 3}}

	_, err := f.svc.PlaceOrder(context.Background(), checkout("session:s1"))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	var stockErr *ports.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, int64(1), stockErr.ProductID)

	require.Equal(t, 1, f.ledger.stock[1])
	require.Len(t, f.carts.lines["session:s1"], 1)
	orders, err := f.svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrder_SecondLineFailureReleasesFirst(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Soccer Ball", 10.00, 5)
	f.seedProduct(2, "Corner Flags", 15.00, 0)
	f.carts.lines["user:42"] = []ports.CartLine{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	}

	_, err := f.svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	var stockErr *ports.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, int64(2), stockErr.ProductID)

	// Product 1 was reserved first (ascending id order) and must be back.
	require.Equal(t, 5, f.ledger.stock[1])
	require.Equal(t, 0, f.ledger.stock[2])
}

func TestPlaceOrder_ReservesAndPersistsInOneAtomicUnit(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Kayak", 275, 5)
	f.carts.lines["user:42"] = []ports.CartLine{{ProductID: 1, Quantity: 1}}

	atomic := &fakeAtomic{}
	ledger := &boundaryLedger{inner: f.ledger, atomic: atomic}
	repo := &boundaryRepo{Repository: f.repo, atomic: atomic}
	svc := NewService(repo, ledger, f.catalog, f.carts, WithAtomic(atomic))

	order, err := svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.NoError(t, err)
	require.NotNil(t, order)

	// Stock decrement and order write share one atomic unit; a crash between
	// them cannot leave stock decremented without a persisted order.
	require.Equal(t, 1, atomic.runs)
	require.True(t, ledger.reservedInside)
	require.True(t, repo.createdInside)
}

func TestPlaceOrder_CartClearFailureStillReturnsOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Kayak", 275, 5)
	f.carts.lines["user:42"] = []ports.CartLine{{ProductID: 1, Quantity: 1}}
	f.carts.clearErr = errors.New("cart store down")

	order, err := f.svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, 4, f.ledger.stock[1])
}

func TestUpdateStatus_ValidatesTransition(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedProduct(1, "Kayak", 275, 5)
	f.carts.lines["user:42"] = []ports.CartLine{{ProductID: 1, Quantity: 1}}

	order, err := f.svc.PlaceOrder(context.Background(), checkout("user:42"))
	require.NoError(t, err)

	shipped, err := f.svc.UpdateStatus(context.Background(), order.ID, domain.StatusShipped)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, shipped.Status)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, domain.StatusCancelled)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrFinalStatus)
}

func TestListByStatus_RejectsUnknownStatus(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.ListByStatus(context.Background(), "LOST")
	require.ErrorIs(t, err, ErrInvalidInput)
}
