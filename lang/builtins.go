package lang

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// builtins returns the host functions defined in every global scope.
func builtins() []*Builtin {
	return []*Builtin{
		{Name: "input", Arity: 0, Call: builtinInput},
		{Name: "clock", Arity: 0, Call: builtinClock},
	}
}

// builtinInput prompts on the interpreter's output stream, reads one
// line from its input stream, and parses it as a number.
func builtinInput(in *Interpreter, _ []Value) (Value, error) {
	if _, err := io.WriteString(in.stdout, "Input: "); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	line, err := in.stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, ErrReadInput.Wrap(err)
	}

	text := strings.TrimSpace(line)

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, ErrReadInput.With(slog.String("input", text)).Wrap(err)
	}

	return Number(n), nil
}

// builtinClock returns the current wall clock time in seconds, for
// timing scripts.
func builtinClock(_ *Interpreter, _ []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}
