package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tali-lang/tali/lang/lexer"
	"github.com/tali-lang/tali/lang/parser"
	"github.com/tali-lang/tali/lang/token"
)

// Predefined errors (sentinel values).
var (
	ErrUndefinedVariable = NewError("undefined variable")
	ErrTypeMismatch      = NewError("type mismatch")
	ErrDivisionByZero    = NewError("division by zero")
	ErrArityMismatch     = NewError("wrong argument count")
	ErrNotCallable       = NewError("call of non-function value")
	ErrBadControl        = NewError("control statement outside its construct")
	ErrReadInput         = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was
// derived from. Derivation with Wrap/With preserves identity by
// message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// EvalError annotates a runtime error with the token whose evaluation
// failed.
type EvalError struct {
	Err error
	Tok token.Token
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return "runtime error at line " + strconv.Itoa(e.Tok.Line) +
		", column " + strconv.Itoa(e.Tok.Column) + ": " + e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *EvalError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *EvalError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Err.Error()),
		slog.Int("line", e.Tok.Line),
		slog.Int("column", e.Tok.Column),
	)
}

// SourceError decorates a pipeline error with the source text it
// occurred in so diagnostics can point into the offending line.
type SourceError struct {
	Err    error
	Source string
}

// NewSourceError wraps err with the source it was raised against.
// Wrapping is idempotent.
func NewSourceError(err error, source string) *SourceError {
	se := &SourceError{}
	if errors.As(err, &se) {
		return se
	}

	return &SourceError{Err: err, Source: source}
}

// Error renders the error with a caret snippet of the offending
// source line when a position is available:
//
//	syntax error at line 2, column 5:
//	  2 | let = 2;
//	          ^
//	        expected identifier, found '='
func (e *SourceError) Error() string {
	kind, line, col, ok := e.locate()
	if !ok {
		return e.Err.Error()
	}

	var buf strings.Builder

	buf.WriteString(kind)
	buf.WriteString(" error at line ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(":\n")
	buf.WriteString(e.snippet(line, col))
	buf.WriteString("\t")
	buf.WriteString(e.message())

	return buf.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *SourceError) Unwrap() error { return e.Err }

// locate extracts the diagnostic kind and position from the wrapped
// error. Lexer and parser errors are syntax errors; evaluation errors
// are runtime errors.
func (e *SourceError) locate() (kind string, line, col int, ok bool) {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		evalErr  *EvalError
	)

	switch {
	case errors.As(e.Err, &lexErr):
		return "syntax", lexErr.Line, lexErr.Column, true
	case errors.As(e.Err, &parseErr):
		return "syntax", parseErr.Found.Line, parseErr.Found.Column, true
	case errors.As(e.Err, &evalErr):
		return "runtime", evalErr.Tok.Line, evalErr.Tok.Column, true
	}

	return "", 0, 0, false
}

// message returns the wrapped error's description without the
// position prefix already carried by the snippet header.
func (e *SourceError) message() string {
	var evalErr *EvalError
	if errors.As(e.Err, &evalErr) {
		return evalErr.Err.Error()
	}

	return e.Err.Error()
}

// snippet renders the offending source line with a column marker.
func (e *SourceError) snippet(line, col int) string {
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	var src strings.Builder

	// Print the line with line number
	src.WriteString("  ")
	src.WriteString(strconv.Itoa(line))
	src.WriteString(" | ")
	src.WriteString(lines[line-1])
	src.WriteRune('\n')

	// Print marker pointing to the column
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
	if col > 0 {
		padding += strings.Repeat(" ", col-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
