package postgres

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// WithTx returns a context carrying an open transaction handle for
// repositories built on the same database to join.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFrom returns the transaction carried by ctx, or nil when the caller did
// not open one.
func TxFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// Atomic runs functions inside a single database transaction. Every
// repository sharing the *gorm.DB picks the transaction up from the context,
// so writes across repositories commit or roll back as one unit.
type Atomic struct {
	db *gorm.DB
}

// NewAtomic wires a transaction runner over the shared database handle.
func NewAtomic(db *gorm.DB) *Atomic {
	return &Atomic{db: db}
}

func (a *Atomic) RunAtomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if a == nil || a.db == nil {
		return fn(ctx)
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
