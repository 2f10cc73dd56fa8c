package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey carries an open transaction through a context so repository calls
// made inside a unit of work join it instead of opening their own.
type txKey struct{}

// withTx returns a context carrying the transaction handle
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFrom returns the transaction carried by the context, or the fallback
// connection when the call is outside any unit of work
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
