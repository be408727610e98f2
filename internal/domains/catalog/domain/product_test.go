package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validates(t *testing.T) {
	product, err := NewProduct(1, "Kayak", decimal.NewFromFloat(275.00), 10)
	require.NoError(t, err)
	require.Equal(t, "Kayak", product.Name)

	_, err = NewProduct(2, "   ", decimal.NewFromInt(5), 1)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct(3, "Lifejacket", decimal.NewFromInt(-1), 1)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct(4, "Soccer Ball", decimal.NewFromInt(20), -1)
	require.ErrorIs(t, err, ErrNegativeStock)
}

func TestProduct_InStock(t *testing.T) {
	product, err := NewProduct(1, "Kayak", decimal.NewFromInt(275), 3)
	require.NoError(t, err)

	require.True(t, product.InStock(1))
	require.True(t, product.InStock(3))
	require.False(t, product.InStock(4))
	require.False(t, product.InStock(0))
	require.False(t, product.InStock(-1))
}
