package stdsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zeptools/sqlbind/db/sqldb"
)

type PreparedStmt struct {
	stmt     *sql.Stmt
	numInput int
	release  func() error // returns a pinned connection, nil inside a Tx
}

// Ensure stdsql.PreparedStmt implements sqldb.PreparedStmt interface
var _ sqldb.PreparedStmt = (*PreparedStmt)(nil)

func (p *PreparedStmt) NumInput() int {
	return p.numInput
}

func (p *PreparedStmt) Exec(ctx context.Context, args ...any) (sqldb.Result, error) {
	return p.stmt.ExecContext(ctx, args...)
}

func (p *PreparedStmt) Close() error {
	err := p.stmt.Close()
	if p.release != nil {
		err = errors.Join(err, p.release())
	}
	return err
}
