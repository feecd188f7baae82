package bind

import (
	"errors"
	"fmt"
)

// Stage is the step of Exec that failed.
type Stage uint8

const (
	StageConnection Stage = iota + 1
	StagePrepare
	StageBind
	StageExecute
)

func (s Stage) String() string {
	switch s {
	case StageConnection:
		return "connection"
	case StagePrepare:
		return "prepare"
	case StageBind:
		return "bind"
	case StageExecute:
		return "execute"
	default:
		return "unknown"
	}
}

var (
	ErrNoConnection = errors.New("bind: no connection")
	ErrRange        = errors.New("bind: position out of range")
	ErrUnbound      = errors.New("bind: placeholder left unbound")
	ErrOverflow     = errors.New("bind: integer overflows int64")
	ErrInvalidValue = errors.New("bind: invalid value")
	ErrExecuted     = errors.New("bind: statement already executed")
)

type Error struct {
	Stage Stage
	Pos   int // 1-based placeholder position, 0 when not position specific
	Err   error
}

func (e *Error) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("%s failed at position %d: %v", e.Stage, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf reports the failed stage of err, or 0 if err did not come from this package.
func StageOf(err error) Stage {
	var be *Error
	if errors.As(err, &be) {
		return be.Stage
	}
	return 0
}
