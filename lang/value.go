package lang

import (
	"log/slog"
	"strconv"

	"github.com/tali-lang/tali/lang/ast"
	"github.com/tali-lang/tali/lang/token"
)

// Type identifies the runtime kind of a [Value].
type Type int

// Runtime value kinds.
const (
	TypeNumber Type = iota
	TypeString
	TypeBoolean
	TypeNil
	TypeFunction
)

var typeNames = [...]string{
	TypeNumber:   "number",
	TypeString:   "string",
	TypeBoolean:  "boolean",
	TypeNil:      "nil",
	TypeFunction: "function",
}

// String returns the type name used in diagnostics.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}

	return typeNames[t]
}

// Value is a runtime value produced by evaluating an expression.
//
// The concrete variants are [Number], [String], [Boolean], [Nil],
// [*Function], and [*Builtin].
type Value interface {
	// Type returns the runtime kind of the value.
	Type() Type

	// String renders the value the way the print statement displays it.
	String() string
}

// Number is a 64-bit floating point value.
// All numeric literals and arithmetic results are numbers.
type Number float64

func (Number) Type() Type { return TypeNumber }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// String is an immutable text value.
type String string

func (String) Type() Type { return TypeString }

func (s String) String() string { return string(s) }

// Boolean is a truth value.
type Boolean bool

func (Boolean) Type() Type { return TypeBoolean }

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

// Nil is the absence of a value. It is the result of declarations
// without initializers and of function bodies that complete without
// an explicit return.
type Nil struct{}

func (Nil) Type() Type { return TypeNil }

func (Nil) String() string { return "nil" }

// Function is a user-declared function value. Env is the environment
// in effect at the declaration site, shared by every call so that
// closures observe each other's mutations.
type Function struct {
	Name   string
	Params []token.Token
	Body   *ast.Block
	Env    *Environment
}

func (*Function) Type() Type { return TypeFunction }

func (f *Function) String() string { return "<fn " + f.Name + ">" }

// Builtin is a host-provided function value.
type Builtin struct {
	Name  string
	Arity int
	Call  func(in *Interpreter, args []Value) (Value, error)
}

func (*Builtin) Type() Type { return TypeFunction }

func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }

// Truthy maps a value to its conditional interpretation. Booleans are
// truth-valued directly, nil is falsy, and everything else is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Boolean:
		return bool(v)
	case Nil:
		return false
	default:
		return true
	}
}

// Equal reports whether two values compare equal. Values of different
// kinds never compare equal, nil compares equal only to nil, and
// functions compare by identity.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		bv, ok := b.(Number)

		return ok && a == bv
	case String:
		bv, ok := b.(String)

		return ok && a == bv
	case Boolean:
		bv, ok := b.(Boolean)

		return ok && a == bv
	case Nil:
		_, ok := b.(Nil)

		return ok
	default:
		return a == b
	}
}

// logValue renders a value for structured logging.
func logValue(v Value) slog.Value {
	return slog.GroupValue(
		slog.String("type", v.Type().String()),
		slog.String("value", v.String()),
	)
}
