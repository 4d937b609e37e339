package cmd

import (
	"context"

	"github.com/tali-lang/tali/cli/cmd/repl"
	"github.com/tali-lang/tali/log"
)

// Repl starts an interactive session with a persistent global environment.
type Repl struct {
	Cache string `default:"${cache}" help:"Directory for session history" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	return repl.Run(ctx, r.Cache, log.Default())
}
