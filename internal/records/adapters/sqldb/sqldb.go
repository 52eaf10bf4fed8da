// Package sqldb narrows *sql.DB to the calls the record repositories make, so
// they can be tested against hand fakes.
package sqldb

import (
	"context"
	"database/sql"
)

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

type pool struct {
	db *sql.DB
}

// Wrap adapts a connection pool; *sql.Rows already satisfies Rows.
func Wrap(db *sql.DB) DB {
	return &pool{db: db}
}

func (p *pool) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.db.ExecContext(ctx, query, args...)
}

func (p *pool) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
