package lang

import (
	"io"

	"github.com/tali-lang/tali/lang/ast"
	"github.com/tali-lang/tali/lang/lexer"
	"github.com/tali-lang/tali/lang/parser"
)

// Program pairs a parsed syntax tree with the source text it was
// parsed from, so diagnostics can quote the offending line.
type Program struct {
	Tree   *ast.Program
	Source string
}

// Parse lexes and parses source into a program. The first syntax
// error aborts the parse; no partial tree is returned.
func Parse(source string) (*Program, error) {
	tree, err := parser.New(lexer.New(source)).Parse()
	if err != nil {
		return nil, NewSourceError(err, source)
	}

	return &Program{Tree: tree, Source: source}, nil
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader) (*Program, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError("failed to read source").Wrap(err)
	}

	return Parse(string(source))
}

// Print writes an indented tree rendering of the program to w.
func (p *Program) Print(w io.Writer) error {
	return p.Tree.Print(w)
}

// Eval parses and executes source in the interpreter's global scope.
// Runtime errors are decorated with the source for caret diagnostics.
func (in *Interpreter) Eval(source string) (Value, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return in.RunProgram(prog)
}

// RunProgram executes a parsed program, decorating any runtime error
// with the program's source.
func (in *Interpreter) RunProgram(prog *Program) (Value, error) {
	value, err := in.Run(prog.Tree)
	if err != nil {
		return nil, NewSourceError(err, prog.Source)
	}

	return value, nil
}
