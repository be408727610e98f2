package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the full checkout against the orders service.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// CheckoutRejectedErrorType tags business rejections on activity failures.
const CheckoutRejectedErrorType = "CheckoutRejected"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	checkoutService ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(checkoutService ordersports.Service) *Activities {
	return &Activities{checkoutService: checkoutService}
}

// PlaceOrder executes the checkout saga and returns the committed order.
// The saga compensates its own reservations on failure, so a retried
// activity always starts from clean stock.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.checkoutService == nil {
		logger.Error("checkout activity not initialized", "customer", input.Customer)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customer", input.Customer)
	order, err := a.checkoutService.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customer", input.Customer, "error", err)
		return nil, checkoutFailure(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// checkoutFailure marks business rejections non-retryable: an empty cart, a
// stock shortage, or invalid input fails the same way on every attempt, so
// only infrastructure errors are left for the retry policy.
func checkoutFailure(err error) error {
	if errors.Is(err, ordersports.ErrEmptyCart) ||
		errors.Is(err, ordersports.ErrInsufficientStock) ||
		errors.Is(err, ordersapp.ErrInvalidInput) {
		return temporal.NewNonRetryableApplicationError(err.Error(), CheckoutRejectedErrorType, err)
	}
	return err
}
