// Package bind prepares a statement, binds an ordered list of typed
// arguments to its positional placeholders and executes it once.
//
//	ok := bind.Insert(ctx, handle,
//		"INSERT INTO students (name, age) VALUES (?,?)",
//		bind.Text("Jane"), bind.Int(16))
package bind

import (
	"context"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/zeptools/sqlbind/db/sqldb"
	"github.com/zeptools/sqlbind/logger"
)

const DefaultCacheSize = 256

type countKey struct {
	dialect string
	query   string
}

// Binder caches scanned placeholder counts per statement text, for drivers
// that do not report one. It is safe for concurrent use.
type Binder struct {
	counts *lru.Cache[countKey, int]
	log    *zerolog.Logger
}

type Option func(*Binder)

func WithLogger(l zerolog.Logger) Option {
	return func(b *Binder) {
		b.log = &l
	}
}

// WithCacheSize sets how many statement texts keep their placeholder count. 0 disables the cache.
func WithCacheSize(size int) Option {
	return func(b *Binder) {
		if size <= 0 {
			b.counts = nil
			return
		}
		b.counts, _ = lru.New[countKey, int](size)
	}
}

func New(opts ...Option) *Binder {
	b := &Binder{}
	b.counts, _ = lru.New[countKey, int](DefaultCacheSize)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBinder = New()

// Exec runs query on p with args bound in order, using the default Binder.
func Exec(ctx context.Context, p sqldb.Preparer, query string, args ...Value) (sqldb.Result, error) {
	return defaultBinder.Exec(ctx, p, query, args...)
}

// Insert is Exec reduced to success or failure, using the default Binder.
func Insert(ctx context.Context, p sqldb.Preparer, query string, args ...Value) bool {
	return defaultBinder.Insert(ctx, p, query, args...)
}

// Exec prepares query, binds args to positions 1..N and executes the statement once.
// Any failure is an *Error naming the stage; nothing is executed unless every
// placeholder got exactly one argument. The prepared statement is always closed.
func (b *Binder) Exec(ctx context.Context, p sqldb.Preparer, query string, args ...Value) (sqldb.Result, error) {
	if isNil(p) {
		return nil, &Error{Stage: StageConnection, Err: ErrNoConnection}
	}
	ps, err := p.Prepare(ctx, query)
	if err != nil {
		return nil, &Error{Stage: StagePrepare, Err: err}
	}
	defer func() {
		if err := ps.Close(); err != nil {
			l := b.logger()
			l.Warn().Err(err).Msg("failed to close prepared statement")
		}
	}()

	n := ps.NumInput()
	if n < 0 {
		if n, err = b.numInput(query, p.Dialect()); err != nil {
			return nil, &Error{Stage: StagePrepare, Err: err}
		}
	}
	stmt := NewStatement(ps, n)
	if _, err = BindAll(stmt, args...); err != nil {
		return nil, err
	}
	return stmt.Exec(ctx)
}

func (b *Binder) Insert(ctx context.Context, p sqldb.Preparer, query string, args ...Value) bool {
	if _, err := b.Exec(ctx, p, query, args...); err != nil {
		l := b.logger()
		l.Warn().
			Err(err).
			Stringer("stage", StageOf(err)).
			Str("query", query).
			Int("args", len(args)).
			Msg("insert failed")
		return false
	}
	return true
}

func (b *Binder) numInput(query string, dialect string) (int, error) {
	syn := sqldb.SyntaxFor(dialect)
	if b.counts == nil {
		return sqldb.CountPlaceholders(query, syn)
	}
	key := countKey{dialect: dialect, query: query}
	if n, ok := b.counts.Get(key); ok {
		return n, nil
	}
	n, err := sqldb.CountPlaceholders(query, syn)
	if err != nil {
		return 0, err
	}
	b.counts.Add(key, n)
	return n, nil
}

func (b *Binder) logger() *zerolog.Logger {
	if b.log != nil {
		return b.log
	}
	l := logger.WithComponent("bind")
	return &l
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(p sqldb.Preparer) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
