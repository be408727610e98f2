package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingInfo {
	return ShippingInfo{Address: "1 Main St", City: "Springfield", Zip: "12345"}
}

func TestNewOrder_ComputesTotalFromFrozenPrices(t *testing.T) {
	lines := []Line{
		{ProductID: 1, ProductName: "Soccer Ball", UnitPrice: decimal.NewFromFloat(10.00), Quantity: 2},
		{ProductID: 2, ProductName: "Corner Flags", UnitPrice: decimal.NewFromFloat(15.00), Quantity: 1},
	}
	order, err := NewOrder("user:42", validShipping(), lines)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, order.Status)
	require.Equal(t, "35.00", order.Total.StringFixed(2))
}

func TestNewOrder_Validates(t *testing.T) {
	lines := []Line{{ProductID: 1, UnitPrice: decimal.NewFromInt(1), Quantity: 1}}

	_, err := NewOrder("  ", validShipping(), lines)
	require.ErrorIs(t, err, ErrInvalidCustomer)

	_, err = NewOrder("user:42", ShippingInfo{City: "Springfield"}, lines)
	require.ErrorIs(t, err, ErrInvalidShipping)

	_, err = NewOrder("user:42", validShipping(), nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestTransition_FinalStatesReject(t *testing.T) {
	order, err := NewOrder("user:42", validShipping(), []Line{{ProductID: 1, UnitPrice: decimal.NewFromInt(1), Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, order.Transition(StatusShipped))
	require.ErrorIs(t, order.Transition(StatusCancelled), ErrFinalStatus)

	require.ErrorIs(t, order.Transition("LOST"), ErrInvalidStatus)
}
