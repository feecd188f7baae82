package stdsql

import (
	"context"
	"database/sql"

	"github.com/zeptools/sqlbind/db/sqldb"
)

type Tx struct {
	tx     *sql.Tx
	dbType string
}

// Ensure stdsql.Tx implements sqldb.Tx interface
var _ sqldb.Tx = (*Tx)(nil)

func (t *Tx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *Tx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *Tx) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	// database/sql gives no driver access inside a Tx
	return &PreparedStmt{stmt: stmt, numInput: -1}, nil
}

func (t *Tx) Dialect() string {
	return t.dbType
}
