package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	orderactivities "github.com/sportsstore/go-gin-store-server/internal/platform/temporal/activities/orders"
)

// RunOrderCheckoutSequence executes the checkout activity with a bounded
// retry policy. The activity marks business rejections non-retryable, so the
// policy here only governs infrastructure failures.
func RunOrderCheckoutSequence(ctx workflow.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order checkout sequence started", "customer", input.Customer)
	checkoutOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, checkoutOptions),
		orderactivities.PlaceOrderActivityName,
		input,
	).Get(ctx, &order)
	if err != nil {
		logger.Error("order checkout sequence failed", "customer", input.Customer, "error", err)
		return nil, err
	}
	logger.Info("order checkout sequence completed", "orderId", order.ID)
	return &order, nil
}
