package bind

import (
	"fmt"
	"math"
	"reflect"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Value is one argument for a positional placeholder: an integer or a text.
// The zero Value is invalid and fails to bind.
type Value struct {
	kind Kind
	i    int64
	s    string
	err  error // set by Of when the Go value has no exact representation
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// TextBytes copies b, so the caller may reuse the buffer right away.
func TextBytes(b []byte) Value {
	return Value{kind: KindText, s: string(b)}
}

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bindable is the set of Go types a Value can be built from.
type Bindable interface {
	Integer | ~string
}

// Of builds a Value from any Bindable. Unsigned values above math.MaxInt64
// produce a Value that fails at bind time with ErrOverflow.
func Of[T Bindable](v T) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	default: // unsigned
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{kind: KindInt, err: fmt.Errorf("%w: %d", ErrOverflow, u)}
		}
		return Int(int64(u))
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Int() int64 {
	return v.i
}

func (v Value) Text() string {
	return v.s
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("int(%d)", v.i)
	case KindText:
		return fmt.Sprintf("text(%q)", v.s)
	default:
		return "invalid"
	}
}

func (v Value) bindTo(t Target, pos int) error {
	if v.err != nil {
		return v.err
	}
	switch v.kind {
	case KindInt:
		return t.BindInt(pos, v.i)
	case KindText:
		return t.BindText(pos, v.s)
	default:
		return ErrInvalidValue
	}
}
