package mysql

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // side-effect
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/db/sqldb/impls/stdsql"
)

const DBType = "mysql"

func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *sqldb.Conf) *stdsql.Client {
	return &stdsql.Client{
		Conf:       conf,
		DBType:     DBType,
		DriverName: "mysql",
		BuildDSN:   BuildDSN,
		Tune:       tune,
	}
}

func BuildDSN(conf *sqldb.Conf) string {
	tz := conf.TZ
	if tz == "" {
		tz = "UTC"
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=%s&sql_mode=ANSI_QUOTES",
		conf.User,
		conf.PW,
		conf.Host,
		conf.Port,
		conf.DB,
		tz,
	)
}

func tune(db *sql.DB, conf *sqldb.Conf) {
	maxConns := conf.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
}
