package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/tali-lang/tali/lang"
	"github.com/tali-lang/tali/log"
)

// Run executes one or more script files in a single interpreter, so
// later scripts see global bindings made by earlier ones.
type Run struct {
	Sources []string `arg:"" default:"-" help:"Script file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	srcs, err := openSources(r.Sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	if len(srcs) == 0 {
		return ErrNoSource
	}

	in := lang.NewInterpreter()

	for _, src := range srcs {
		if err := runSource(ctx, in, src); err != nil {
			return err
		}
	}

	return nil
}

func runSource(ctx context.Context, in *lang.Interpreter, src source) error {
	prog, err := parseSource(src)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "running script",
		slog.String("source", src.name),
		slog.Int("statements", len(prog.Tree.Stmts)),
	)

	if _, err := in.RunProgram(prog); err != nil {
		return NewError(src.name).Wrap(err).
			With(slog.String("command", "run"))
	}

	return nil
}

func parseSource(src source) (*lang.Program, error) {
	text, err := io.ReadAll(src.reader)
	if err != nil {
		return nil, NewError(src.name).Wrap(err)
	}

	prog, err := lang.Parse(string(text))
	if err != nil {
		return nil, NewError(src.name).Wrap(err).
			With(slog.String("source", src.name))
	}

	return prog, nil
}
