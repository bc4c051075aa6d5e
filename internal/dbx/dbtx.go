// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and a Transactor seam
// so services do not depend on *sql.DB directly.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work passed to WithTx.
type TxFunc func(ctx context.Context, tx DBTX) error

// Transactor runs a unit of work atomically.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// SQLTransactor is a Transactor over a *sql.DB.
type SQLTransactor struct {
	db   *sql.DB
	opts *sql.TxOptions
}

// NewSQLTransactor returns a Transactor that opens transactions on db.
func NewSQLTransactor(db *sql.DB, opts *sql.TxOptions) *SQLTransactor {
	return &SQLTransactor{db: db, opts: opts}
}

// WithTx implements Transactor.
func (t *SQLTransactor) WithTx(ctx context.Context, fn TxFunc) error {
	return WithTx(ctx, t.db, t.opts, fn)
}

// NoTx runs the unit of work directly with a nil handle. It serves backends
// whose repositories ignore the DBTX argument, such as the in-memory store.
type NoTx struct{}

// WithTx implements Transactor.
func (NoTx) WithTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, nil)
}
