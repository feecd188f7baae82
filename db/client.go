package db

import (
	"github.com/zeptools/sqlbind/logger"
)

type Client interface {
	Close() error
}

func CloseClient(name string, c Client) {
	l := logger.WithComponent("db")
	if c == nil {
		l.Info().Str("client", name).Msg("nothing to close")
		return
	}
	if err := c.Close(); err != nil {
		l.Warn().Err(err).Str("client", name).Msg("failed to close")
	} else {
		l.Info().Str("client", name).Msg("closed")
	}
}
