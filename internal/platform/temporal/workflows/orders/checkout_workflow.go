package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	"github.com/sportsstore/go-gin-store-server/internal/platform/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "orders.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkout workflows.
	CheckoutTaskQueue = "ORDER_CHECKOUT"
)

// CheckoutWorkflowInput captures the payload required to place an order.
type CheckoutWorkflowInput struct {
	Command ordersports.CheckoutInput
	TraceID string
}

// CheckoutWorkflow orchestrates the checkout saga as a durable execution.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "customer", input.Command.Customer)...)
	order, err := sequences.RunOrderCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "customer", input.Command.Customer, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
