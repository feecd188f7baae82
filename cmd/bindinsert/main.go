// Command bindinsert opens a configured database and inserts a student and a
// teacher through the statement binder.
//
//	bindinsert [-config sql-databases.json] [-db main] [-log-level info]
//
// Without -config it uses the SQLite file example.db.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeptools/sqlbind/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		logger.Error().Err(err).Msg("bindinsert failed")
		stop()
		os.Exit(1)
	}
}
