package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestIdentity_KeyRoundTrip(t *testing.T) {
	session, err := SessionIdentity("abc-123")
	require.NoError(t, err)
	require.Equal(t, "session:abc-123", session.Key())

	user, err := UserIdentity(42)
	require.NoError(t, err)
	require.Equal(t, "user:42", user.Key())

	parsed, err := ParseKey(session.Key())
	require.NoError(t, err)
	require.Equal(t, session, parsed)

	parsed, err = ParseKey(user.Key())
	require.NoError(t, err)
	require.Equal(t, user, parsed)
}

func TestIdentity_Invalid(t *testing.T) {
	_, err := SessionIdentity("  ")
	require.ErrorIs(t, err, ErrInvalidIdentity)

	_, err = UserIdentity(0)
	require.ErrorIs(t, err, ErrInvalidIdentity)

	for _, key := range []string{"", "user", "user:abc", "cart:1"} {
		_, err := ParseKey(key)
		require.ErrorIs(t, err, ErrInvalidIdentity, "key %q", key)
	}
}

func TestNewLine_Validates(t *testing.T) {
	owner, err := UserIdentity(7)
	require.NoError(t, err)

	line, err := NewLine(owner, 3, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), line.ProductID)
	require.Equal(t, 2, line.Quantity)

	_, err = NewLine(Identity{}, 3, 2)
	require.ErrorIs(t, err, ErrInvalidIdentity)
	_, err = NewLine(owner, 0, 2)
	require.ErrorIs(t, err, ErrInvalidProduct)
	_, err = NewLine(owner, 3, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestTotal_SumsSubtotals(t *testing.T) {
	lines := []PricedLine{
		{Quantity: 2, UnitPrice: decimal.NewFromFloat(10.00)},
		{Quantity: 1, UnitPrice: decimal.NewFromFloat(15.00)},
	}
	require.Equal(t, "35.00", Total(lines).StringFixed(2))
	require.Equal(t, "0.00", Total(nil).StringFixed(2))
}
