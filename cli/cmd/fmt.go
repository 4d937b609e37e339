package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/tali-lang/tali/lang"
	"github.com/tali-lang/tali/lang/lexer"
)

// Fmt parses a script and renders its syntax tree in the chosen format.
type Fmt struct {
	Tree   Tree   `cmd:"" default:"withargs" help:"Render as an indented tree (default)."`
	JSON   JSON   `cmd:""                    help:"Render as JSON."`
	YAML   YAML   `cmd:""                    help:"Render as YAML."`
	Tokens Tokens `cmd:""                    help:"Dump the token stream."`
}

// Tree renders the syntax tree as indented text.
type Tree struct {
	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	prog, err := parseNamed(t.Source)
	if err != nil {
		return err
	}

	return prog.Print(os.Stdout)
}

// JSON renders the syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	prog, err := parseNamed(j.Source)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(prog.ToMap(), "", indentOf(j.Indent))
	if err != nil {
		return ErrJSONMarshal.Wrap(err).
			With(slog.String("format", "json"))
	}

	_, err = fmt.Fprintln(os.Stdout, string(data))

	return err
}

// YAML renders the syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	prog, err := parseNamed(y.Source)
	if err != nil {
		return err
	}

	data, err := yaml.MarshalWithOptions(prog.ToMap(), yaml.Indent(y.Indent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).
			With(slog.String("format", "yaml"))
	}

	_, err = os.Stdout.Write(data)

	return err
}

// Tokens dumps the lexed token stream, one token per line.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"source"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	srcs, err := openSources([]string{t.Source})
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	if len(srcs) == 0 {
		return ErrNoSource
	}

	src := srcs[0]

	text, err := io.ReadAll(src.reader)
	if err != nil {
		return NewError(src.name).Wrap(err)
	}

	toks, err := lexer.New(string(text)).Scan()
	if err != nil {
		return NewError(src.name).Wrap(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for _, tok := range toks {
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n",
			tok.Line, tok.Column, tok.Kind, tok.Lexeme)
	}

	return w.Flush()
}

// parseNamed opens and parses a single script argument.
func parseNamed(name string) (*lang.Program, error) {
	srcs, err := openSources([]string{name})
	if err != nil {
		return nil, err
	}
	defer closeSources(srcs)

	if len(srcs) == 0 {
		return nil, ErrNoSource
	}

	p, err := parseSource(srcs[0])
	if err != nil {
		return nil, err
	}

	return p, nil
}

func indentOf(width int) string {
	if width < 0 {
		width = 0
	}

	indent := make([]byte, width)
	for i := range indent {
		indent[i] = ' '
	}

	return string(indent)
}
