package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/sqlbind/db/sqldb"
)

type Tx struct {
	tx   pgx.Tx
	conn *pgxpool.Conn // released when the transaction ends
}

// Ensure pgsql.Tx implements sqldb.Tx
var _ sqldb.Tx = (*Tx)(nil)

func (t *Tx) Commit(ctx context.Context) error {
	defer t.conn.Release()
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	defer t.conn.Release()
	return t.tx.Rollback(ctx)
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Result{tag: tag}, nil
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

func (t *Tx) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	ps, err := prepareOn(ctx, t.tx.Conn(), nil, query)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (t *Tx) Dialect() string {
	return DBType
}
