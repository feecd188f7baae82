package sqldb

import "errors"

var (
	ErrNoRows  = errors.New("sqldb: no rows in result set")
	ErrNotOpen = errors.New("sqldb: client not opened")
)
