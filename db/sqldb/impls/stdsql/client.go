package stdsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/logger"
)

// Client is a sqldb.Client over a database/sql driver.
// Driver packages fill in the hooks and keep everything else shared.
type Client struct {
	Conf       *sqldb.Conf
	DBType     string                        // sqldb type name, e.g. "sqlite"
	DriverName string                        // database/sql driver name, e.g. "sqlite3"
	BuildDSN   func(conf *sqldb.Conf) string // used when Conf.DSN is empty
	Tune       func(db *sql.DB, conf *sqldb.Conf)

	// db fields are implementation details, not exported
	db  *sql.DB
	dsn string
	log zerolog.Logger
}

// Ensure stdsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	c.log = logger.WithComponent("sqldb").With().Str("type", c.DBType).Logger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	c.log.Info().Msg("client initialized")
	return nil
}

// Open opens the pool and verifies it within ctx; sql.Open alone never dials.
func (c *Client) Open(ctx context.Context) error {
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = c.BuildDSN(c.Conf)
	}
	db, err := sql.Open(c.DriverName, c.dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.DBType, err)
	}
	if c.Tune != nil {
		c.Tune(db, c.Conf)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%s ping failed: %w", c.DBType, err)
	}
	c.db = db
	return nil
}

func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	c.log.Info().Msg("closing client")
	err := c.db.Close()
	c.db = nil
	if err != nil {
		return err
	}
	c.log.Info().Msg("client closed")
	return nil
}

func (c *Client) GetHandle() sqldb.Handle {
	if c.db == nil {
		return nil
	}
	return NewHandle(c.db, c.DBType)
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return sqldb.ErrNotOpen
	}
	return c.db.PingContext(ctx)
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.db == nil {
		return nil, sqldb.ErrNotOpen
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx, dbType: c.DBType}, nil
}
