package bind

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeptools/sqlbind/db/sqldb"
)

// Target receives positional binds. Positions are 1-based.
type Target interface {
	BindInt(pos int, v int64) error
	BindText(pos int, v string) error
}

// BindAll binds args to t in order: args[i] goes to position i+1.
// It stops at the first failure and returns the number of positions bound.
func BindAll(t Target, args ...Value) (int, error) {
	pos := 0
	for _, arg := range args {
		pos++
		if err := arg.bindTo(t, pos); err != nil {
			return pos - 1, &Error{Stage: StageBind, Pos: pos, Err: err}
		}
	}
	return pos, nil
}

// Statement collects binds for a prepared statement with a fixed number of
// placeholders and executes it once.
type Statement struct {
	stmt     sqldb.PreparedStmt
	slots    []any
	bound    []bool
	executed bool
}

// Ensure Statement implements Target
var _ Target = (*Statement)(nil)

func NewStatement(stmt sqldb.PreparedStmt, numInput int) *Statement {
	return &Statement{
		stmt:  stmt,
		slots: make([]any, numInput),
		bound: make([]bool, numInput),
	}
}

func (s *Statement) NumInput() int {
	return len(s.slots)
}

func (s *Statement) BindInt(pos int, v int64) error {
	if err := s.check(pos); err != nil {
		return err
	}
	s.slots[pos-1] = v
	s.bound[pos-1] = true
	return nil
}

// BindText stores its own copy of v.
func (s *Statement) BindText(pos int, v string) error {
	if err := s.check(pos); err != nil {
		return err
	}
	s.slots[pos-1] = strings.Clone(v)
	s.bound[pos-1] = true
	return nil
}

func (s *Statement) check(pos int) error {
	if s.executed {
		return ErrExecuted
	}
	if pos < 1 || pos > len(s.slots) {
		return fmt.Errorf("%w: %d of %d", ErrRange, pos, len(s.slots))
	}
	return nil
}

// Exec runs the statement with the bound values. Every position must be bound.
func (s *Statement) Exec(ctx context.Context) (sqldb.Result, error) {
	if s.executed {
		return nil, &Error{Stage: StageExecute, Err: ErrExecuted}
	}
	for i, ok := range s.bound {
		if !ok {
			return nil, &Error{Stage: StageBind, Pos: i + 1, Err: ErrUnbound}
		}
	}
	s.executed = true
	res, err := s.stmt.Exec(ctx, s.slots...)
	if err != nil {
		return nil, &Error{Stage: StageExecute, Err: err}
	}
	return res, nil
}
