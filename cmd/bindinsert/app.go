package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"

	"github.com/zeptools/sqlbind/db"
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/db/sqldb/bind"
	"github.com/zeptools/sqlbind/db/sqldb/impls/mysql"
	"github.com/zeptools/sqlbind/db/sqldb/impls/pgsql"
	"github.com/zeptools/sqlbind/db/sqldb/impls/sqlite"
	"github.com/zeptools/sqlbind/logger"
)

//go:embed sql
var sqlFS embed.FS

var errInsert = errors.New("insert failed")

type options struct {
	configPath string
	dbName     string
	logLevel   string
	console    bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("bindinsert", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to a JSON file of named database confs")
	fs.StringVar(&opts.dbName, "db", "main", "name of the database conf to use")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	fs.BoolVar(&opts.console, "console", false, "human-readable logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConf(opts *options) (*sqldb.Conf, error) {
	if opts.configPath == "" {
		return &sqldb.Conf{Type: sqlite.DBType, DB: "example.db"}, nil
	}
	confs, err := sqldb.LoadConfs(opts.configPath)
	if err != nil {
		return nil, err
	}
	conf, ok := confs[opts.dbName]
	if !ok {
		return nil, fmt.Errorf("database %q not found in %s", opts.dbName, opts.configPath)
	}
	return conf, nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err = logger.Init(logger.Config{Level: opts.logLevel, Console: opts.console}); err != nil {
		return err
	}
	conf, err := loadConf(opts)
	if err != nil {
		return err
	}

	sqlite.Register()
	mysql.Register()
	pgsql.Register()

	client, err := sqldb.New(conf.Type, conf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	defer db.CloseClient(opts.dbName, client)

	stmts := sqldb.NewRawStore()
	handle := client.GetHandle()
	if err = stmts.Load(sqlFS, "sql", conf.Type); err != nil {
		return err
	}
	logger.Debug().Str("db_type", conf.Type).Int("stmts", stmts.Len()).Msg("raw sql loaded")
	return insertSamples(ctx, handle, stmts)
}

func insertSamples(ctx context.Context, h sqldb.Handle, stmts *sqldb.RawStore) error {
	for _, name := range []string{"create_students", "create_teachers"} {
		if _, err := h.Exec(ctx, stmts.MustGet(name)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	log := logger.WithComponent("bindinsert")
	var failed int
	if bind.Insert(ctx, h, stmts.MustGet("insert_student"),
		bind.Text("Jane"), bind.Int(16)) {
		log.Info().Str("table", "students").Msg("row inserted")
	} else {
		failed++
	}
	if bind.Insert(ctx, h, stmts.MustGet("insert_teacher"),
		bind.Text("Mr. Smith"), bind.Text("Math"), bind.Int(50000)) {
		log.Info().Str("table", "teachers").Msg("row inserted")
	} else {
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of 2", errInsert, failed)
	}
	return nil
}
