package dbpkg

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// WithTx runs fn inside a database transaction.
//
// The transaction is stored in the context passed to fn; repositories pick it
// up with FromContext. It is committed if fn returns nil and rolled back
// otherwise. Nested calls join the outer transaction.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}

		return err
	}

	return tx.Commit()
}

// FromContext returns the transaction stored in ctx or db when there is none.
func FromContext(ctx context.Context, db SQLInterface) SQLInterface {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}

	return db
}
