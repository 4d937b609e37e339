package lang

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	base := NewError("base")
	if base.Error() != "base" {
		t.Errorf("got %q", base.Error())
	}

	wrapped := base.Wrap(errors.New("cause"))
	if wrapped.Error() != "base: cause" {
		t.Errorf("got %q", wrapped.Error())
	}

	if !errors.Is(wrapped, base) {
		t.Error("wrapping broke sentinel identity")
	}
}

func TestError_WithPreservesIdentity(t *testing.T) {
	derived := ErrTypeMismatch.With(slog.String("operator", "+"))

	if !errors.Is(derived, ErrTypeMismatch) {
		t.Error("With broke sentinel identity")
	}

	if derived.Error() != ErrTypeMismatch.Error() {
		t.Errorf("got %q", derived.Error())
	}
}

func TestSourceError_SyntaxSnippet(t *testing.T) {
	_, err := Parse("let x = 1;\nlet = 2;")
	if err == nil {
		t.Fatal("expected parse error")
	}

	want := "syntax error at line 2, column 5:\n" +
		"  2 | let = 2;\n" +
		"          ^\n" +
		"\texpected identifier, found '='"

	if err.Error() != want {
		t.Errorf("got:\n%s\nwant:\n%s", err.Error(), want)
	}
}

func TestSourceError_LexSnippet(t *testing.T) {
	_, err := Parse(`let s = "open;`)
	if err == nil {
		t.Fatal("expected lex error")
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "syntax error at line 1, column 9:") {
		t.Errorf("got %q", msg)
	}

	if !strings.Contains(msg, "unterminated string literal") {
		t.Errorf("missing description in %q", msg)
	}
}

func TestSourceError_Runtime(t *testing.T) {
	in := NewInterpreter(WithStdout(&strings.Builder{}))

	_, err := in.Eval("missing;")
	if err == nil {
		t.Fatal("expected runtime error")
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "runtime error at line 1, column 1:") {
		t.Errorf("got %q", msg)
	}

	if !strings.Contains(msg, "undefined variable") {
		t.Errorf("missing description in %q", msg)
	}

	if !errors.Is(err, ErrUndefinedVariable) {
		t.Error("source decoration broke errors.Is")
	}
}

func TestSourceError_Idempotent(t *testing.T) {
	inner := NewSourceError(errors.New("plain"), "src")
	outer := NewSourceError(inner, "other")

	if outer != inner {
		t.Error("rewrapping allocated a new source error")
	}
}
