// Package stdsql adapts database/sql drivers to the sqldb interfaces.
// The mysql and sqlite implementations are built on it.
package stdsql

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/zeptools/sqlbind/db/sqldb"
)

type Handle struct {
	*sql.DB // [Embedded]
	dbType  string
}

// Ensure stdsql.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func NewHandle(db *sql.DB, dbType string) *Handle {
	return &Handle{DB: db, dbType: dbType}
}

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return h.DB.ExecContext(ctx, query, args...)
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: h.DB.QueryRowContext(ctx, query, args...)}
}

// Prepare pins one pool connection for the life of the statement so the
// parameter count read from the driver belongs to the statement that runs.
// The connection goes back to the pool on Close.
func (h *Handle) Prepare(ctx context.Context, query string) (sqldb.PreparedStmt, error) {
	conn, err := h.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	numInput := -1
	err = conn.Raw(func(driverConn any) error {
		n, err := driverNumInput(ctx, driverConn, query)
		numInput = n
		return err
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &PreparedStmt{stmt: stmt, numInput: numInput, release: conn.Close}, nil
}

func (h *Handle) Dialect() string {
	return h.dbType
}

// driverNumInput prepares query directly on the driver connection and reports
// driver.Stmt.NumInput. Drivers that cannot tell report -1.
func driverNumInput(ctx context.Context, driverConn any, query string) (int, error) {
	var (
		ds  driver.Stmt
		err error
	)
	switch c := driverConn.(type) {
	case driver.ConnPrepareContext:
		ds, err = c.PrepareContext(ctx, query)
	case driver.Conn:
		ds, err = c.Prepare(query)
	default:
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	n := ds.NumInput()
	if err = ds.Close(); err != nil {
		return -1, err
	}
	return n, nil
}
