package sqldb

import "context"

type PreparedStmt interface {
	// NumInput is the parameter count reported by the engine, -1 if the driver does not know it.
	NumInput() int
	Exec(ctx context.Context, args ...any) (Result, error)
	Close() error
}
