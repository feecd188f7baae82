package sqldb

import "context"

// Preparer is anything statements can be prepared on: a Handle or a Tx.
type Preparer interface {
	// Prepare parses query on the server/engine. The returned statement must be closed by the caller.
	Prepare(ctx context.Context, query string) (PreparedStmt, error)

	// Dialect is the database type the statements are written for, e.g. "sqlite"
	Dialect() string
}

// Handle is the connection surface shared by every driver implementation.
// It is owned by the Client that produced it; callers never close it.
type Handle interface {
	// Exec executes SQL statement like INSERT, UPDATE, DELETE.
	Exec(ctx context.Context, query string, args ...any) (Result, error)

	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // Eager. Fail upfront on statement execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // Lazy. only fails at Scan()

	Preparer
}
