package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/tali-lang/tali/lang"
)

// TestRunValidScript tests running a well-formed script file.
func TestRunValidScript(t *testing.T) {
	path := writeScript(t, t.TempDir(), "a.tali", `
let x = 2;
let y = 3;
x * y;
`)

	r := &Run{Sources: []string{path}}

	if err := r.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

// TestRunSharedGlobals tests that later scripts see earlier definitions.
func TestRunSharedGlobals(t *testing.T) {
	dir := t.TempDir()
	first := writeScript(t, dir, "first.tali", "let shared = 41;")
	second := writeScript(t, dir, "second.tali", "shared + 1;")

	r := &Run{Sources: []string{first, second}}

	if err := r.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

// TestRunSyntaxError tests that a malformed script fails with a parse error.
func TestRunSyntaxError(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.tali", "let = 1;")

	r := &Run{Sources: []string{path}}

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail on a syntax error")
	}

	var srcErr *lang.SourceError
	if !errors.As(err, &srcErr) {
		t.Errorf("Run() error = %T, want *lang.SourceError", err)
	}
}

// TestRunRuntimeError tests that evaluation failures surface as errors.
func TestRunRuntimeError(t *testing.T) {
	path := writeScript(t, t.TempDir(), "boom.tali", "1 / 0;")

	r := &Run{Sources: []string{path}}

	err := r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail on division by zero")
	}

	if !errors.Is(err, lang.ErrDivisionByZero) {
		t.Errorf("Run() error = %v, want ErrDivisionByZero", err)
	}
}

// TestRunMissingFile tests that a nonexistent script fails.
func TestRunMissingFile(t *testing.T) {
	r := &Run{Sources: []string{t.TempDir() + "/absent.tali"}}

	if err := r.Run(context.Background()); err == nil {
		t.Error("Run() should fail for a missing file")
	}
}
