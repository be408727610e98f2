package ports

import (
	"context"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input CheckoutInput) (*domain.Order, error)
}
