package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIdentity = errors.New("cart identity is invalid")
	ErrInvalidProduct  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// IdentityKind tags the owner of a cart.
type IdentityKind string

const (
	IdentitySession IdentityKind = "session"
	IdentityUser    IdentityKind = "user"
)

// Identity is the key under which cart lines are grouped: either an anonymous
// session token or an authenticated user id, never both. Fields are
// unexported so the "both set / neither set" state cannot be constructed.
type Identity struct {
	kind    IdentityKind
	session string
	userID  int64
}

// SessionIdentity builds the identity of an anonymous cart.
func SessionIdentity(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidIdentity
	}
	return Identity{kind: IdentitySession, session: token}, nil
}

// UserIdentity builds the identity of an authenticated user's cart.
func UserIdentity(id int64) (Identity, error) {
	if id <= 0 {
		return Identity{}, ErrInvalidIdentity
	}
	return Identity{kind: IdentityUser, userID: id}, nil
}

func (i Identity) Kind() IdentityKind   { return i.kind }
func (i Identity) SessionToken() string { return i.session }
func (i Identity) UserID() int64        { return i.userID }
func (i Identity) IsZero() bool         { return i.kind == "" }

// Key renders a stable storage/lock key, e.g. "user:42" or "session:abc".
func (i Identity) Key() string {
	switch i.kind {
	case IdentitySession:
		return "session:" + i.session
	case IdentityUser:
		return "user:" + strconv.FormatInt(i.userID, 10)
	default:
		return ""
	}
}

// ParseKey restores an identity from its Key form; used by storage adapters.
func ParseKey(key string) (Identity, error) {
	kind, value, ok := strings.Cut(key, ":")
	if !ok {
		return Identity{}, ErrInvalidIdentity
	}
	switch IdentityKind(kind) {
	case IdentitySession:
		return SessionIdentity(value)
	case IdentityUser:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %s", ErrInvalidIdentity, key)
		}
		return UserIdentity(id)
	default:
		return Identity{}, fmt.Errorf("%w: %s", ErrInvalidIdentity, key)
	}
}

// Line is one cart entry. At most one line exists per (owner, product) pair;
// quantities for the same product always collapse into one line.
type Line struct {
	ID        int64
	Owner     Identity
	ProductID int64
	Quantity  int
}

// NewLine validates and constructs a cart line.
func NewLine(owner Identity, productID int64, quantity int) (*Line, error) {
	if owner.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if productID <= 0 {
		return nil, ErrInvalidProduct
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Line{Owner: owner, ProductID: productID, Quantity: quantity}, nil
}

// PricedLine pairs a quantity with a unit price for totaling.
type PricedLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times unit price.
func (l PricedLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums the subtotals of all lines.
func Total(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
