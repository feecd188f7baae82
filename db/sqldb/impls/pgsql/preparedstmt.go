package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/sqlbind/db/sqldb"
)

// stmtConn is the part of *pgx.Conn a named prepared statement lives on.
type stmtConn interface {
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Deallocate(ctx context.Context, name string) error
}

type PreparedStmt struct {
	conn     stmtConn
	name     string
	numInput int
	release  func() // nil when the connection belongs to a Tx
}

// Ensure pgsql.PreparedStmt implements sqldb.PreparedStmt interface
var _ sqldb.PreparedStmt = (*PreparedStmt)(nil)

// prepareOn prepares query under a fresh name on conn.
// release runs when preparing fails or the statement is closed.
func prepareOn(ctx context.Context, conn stmtConn, release func(), query string) (*PreparedStmt, error) {
	name := stmtName()
	sd, err := conn.Prepare(ctx, name, query)
	if err != nil {
		if release != nil {
			release()
		}
		return nil, err
	}
	return &PreparedStmt{conn: conn, name: name, numInput: len(sd.ParamOIDs), release: release}, nil
}

// NumInput is the number of parameters the server inferred for the statement.
func (p *PreparedStmt) NumInput() int {
	return p.numInput
}

func (p *PreparedStmt) Exec(ctx context.Context, args ...any) (sqldb.Result, error) {
	tag, err := p.conn.Exec(ctx, p.name, args...)
	if err != nil {
		return nil, err
	}
	return &Result{tag: tag}, nil
}

func (p *PreparedStmt) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := p.conn.Deallocate(ctx, p.name)
	if p.release != nil {
		p.release()
	}
	return err
}
