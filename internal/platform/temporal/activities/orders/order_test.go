package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

func TestCheckoutFailure_BusinessRejectionsAreNonRetryable(t *testing.T) {
	rejections := []error{
		ordersports.ErrEmptyCart,
		&ordersports.InsufficientStockError{ProductID: 7},
		fmt.Errorf("%w: shipping address missing", ordersapp.ErrInvalidInput),
	}
	for _, rejection := range rejections {
		err := checkoutFailure(rejection)
		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr, "rejection %v", rejection)
		assert.True(t, appErr.NonRetryable())
		assert.Equal(t, CheckoutRejectedErrorType, appErr.Type())
	}
}

func TestCheckoutFailure_InfrastructureErrorsPassThrough(t *testing.T) {
	infra := errors.New("connection refused")
	require.Same(t, infra, checkoutFailure(infra))
}
