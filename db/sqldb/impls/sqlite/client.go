// Package sqlite registers the embedded SQLite engine (mattn/go-sqlite3, cgo).
package sqlite

import (
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/db/sqldb/impls/stdsql"
)

const (
	DBType     = "sqlite"
	driverName = "sqlite3"
)

func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *stdsql.Client {
	return &stdsql.Client{
		Conf:       conf,
		DBType:     DBType,
		DriverName: driverName,
		BuildDSN:   BuildDSN,
		Tune:       tune,
	}
}

// BuildDSN uses Conf.DB as the database file path.
func BuildDSN(conf *sqldb.Conf) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	return "file:" + conf.DB + "?" + q.Encode()
}

// SQLite serializes writers on the file anyway; one connection also keeps
// an in-memory database alive and shared across calls.
func tune(db *sql.DB, _ *sqldb.Conf) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
}
