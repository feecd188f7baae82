package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/logger"
)

const DBType = "pgsql"

func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Conf *sqldb.Conf
	pool *pgxpool.Pool
	dsn  string
	log  zerolog.Logger
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func BuildDSN(conf *sqldb.Conf) string {
	tz := conf.TZ
	if tz == "" {
		tz = "UTC"
	}
	// NOTE: sslmode=disable is often used for local dev, adjust as needed.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		conf.Host,
		conf.Port,
		conf.User,
		conf.PW,
		conf.DB,
		tz,
	)
}

func (c *Client) Init() error {
	c.log = logger.WithComponent("sqldb").With().Str("type", DBType).Logger()
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = BuildDSN(c.Conf)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		c.pool.Close()
		c.pool = nil
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	c.log.Info().Msg("client initialized")
	return nil
}

func (c *Client) GetHandle() sqldb.Handle {
	if c.pool == nil {
		return nil
	}
	return &Handle{Pool: c.pool}
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) Open(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}
	config.MaxConns = 10
	if c.Conf.MaxOpenConns > 0 {
		config.MaxConns = int32(c.Conf.MaxOpenConns)
	}
	config.MinConns = 1
	config.MaxConnLifetime = 3 * time.Minute
	c.pool, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect pgx pool: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.pool == nil {
		return sqldb.ErrNotOpen
	}
	return c.pool.Ping(ctx)
}

func (c *Client) Close() error {
	if c.pool == nil {
		return nil
	}
	c.log.Info().Msg("closing client")
	c.pool.Close()
	c.pool = nil
	c.log.Info().Msg("client closed")
	return nil
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.pool == nil {
		return nil, sqldb.ErrNotOpen
	}
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection failed: %w", err)
	}
	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("begin transaction failed: %w", err)
	}
	return &Tx{tx: tx, conn: conn}, nil
}
