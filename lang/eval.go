package lang

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tali-lang/tali/lang/ast"
	"github.com/tali-lang/tali/lang/token"
	"github.com/tali-lang/tali/log"
)

// signal propagates non-local control out of statement execution.
// Every execute call returns one; blocks and loops inspect it instead
// of unwinding through panics.
type signal int

const (
	sigNormal signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// control pairs a signal with the value it carries. Only sigReturn
// carries a value.
type control struct {
	sig signal
	val Value
}

var normal = control{sig: sigNormal, val: Nil{}}

// Interpreter executes programs by walking their syntax trees.
// The zero value is not usable; construct with [NewInterpreter].
type Interpreter struct {
	globals *Environment
	stdout  io.Writer
	stdin   *bufio.Reader
	logger  log.Logger
}

// InterpreterOption configures an [Interpreter].
type InterpreterOption func(*Interpreter)

// WithStdout directs print statement output to w.
func WithStdout(w io.Writer) InterpreterOption {
	return func(in *Interpreter) { in.stdout = w }
}

// WithStdin sources input() reads from r.
func WithStdin(r io.Reader) InterpreterOption {
	return func(in *Interpreter) { in.stdin = bufio.NewReader(r) }
}

// WithLogger sets the logger used for evaluation tracing.
func WithLogger(l log.Logger) InterpreterOption {
	return func(in *Interpreter) { in.logger = l }
}

// NewInterpreter creates an interpreter with a fresh global scope
// holding the builtin functions.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		globals: NewEnvironment(),
		stdout:  os.Stdout,
		stdin:   bufio.NewReader(os.Stdin),
		logger:  log.Default(),
	}

	for _, opt := range opts {
		opt(in)
	}

	for _, b := range builtins() {
		in.globals.Define(b.Name, b)
	}

	return in
}

// Globals returns the interpreter's top-level scope. Bindings made
// here persist across Run calls, which is what lets an interactive
// session accumulate state.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Run executes prog in the global scope and returns the value of its
// final expression statement, or [Nil] when the program ends with a
// non-expression statement. A return, break, or continue escaping to
// the top level is a runtime error.
func (in *Interpreter) Run(prog *ast.Program) (Value, error) {
	var last Value = Nil{}

	for _, stmt := range prog.Stmts {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			v, err := in.evaluate(es.Expr, in.globals)
			if err != nil {
				return nil, err
			}

			last = v

			continue
		}

		ctl, err := in.execute(stmt, in.globals)
		if err != nil {
			return nil, err
		}

		if ctl.sig != sigNormal {
			return nil, in.escaped(ctl, stmt)
		}

		last = Nil{}
	}

	return last, nil
}

// escaped converts a control signal that reached the top level into a
// runtime error naming the offending statement.
func (in *Interpreter) escaped(ctl control, stmt ast.Stmt) error {
	name := "return"

	switch ctl.sig {
	case sigBreak:
		name = "break"
	case sigContinue:
		name = "continue"
	}

	return &EvalError{
		Err: ErrBadControl.With(slog.String("statement", name)),
		Tok: stmt.Pos(),
	}
}

// execute runs a single statement in env.
func (in *Interpreter) execute(stmt ast.Stmt, env *Environment) (control, error) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		if _, err := in.evaluate(stmt.Expr, env); err != nil {
			return normal, err
		}

		return normal, nil

	case *ast.Let:
		var value Value = Nil{}

		if stmt.Init != nil {
			v, err := in.evaluate(stmt.Init, env)
			if err != nil {
				return normal, err
			}

			value = v
		}

		env.Define(stmt.Name.Lexeme, value)
		in.logger.Debug("define", slog.String("name", stmt.Name.Lexeme),
			slog.Any("value", logValue(value)))

		return normal, nil

	case *ast.Block:
		return in.executeBlock(stmt, env.Child())

	case *ast.If:
		cond, err := in.evaluate(stmt.Cond, env)
		if err != nil {
			return normal, err
		}

		if Truthy(cond) {
			return in.execute(stmt.Then, env)
		}

		if stmt.Else != nil {
			return in.execute(stmt.Else, env)
		}

		return normal, nil

	case *ast.While:
		return in.executeWhile(stmt, env)

	case *ast.FnDecl:
		fn := &Function{
			Name:   stmt.Name.Lexeme,
			Params: stmt.Params,
			Body:   stmt.Body,
			Env:    env,
		}
		env.Define(fn.Name, fn)

		return normal, nil

	case *ast.Return:
		var value Value = Nil{}

		if stmt.Value != nil {
			v, err := in.evaluate(stmt.Value, env)
			if err != nil {
				return normal, err
			}

			value = v
		}

		return control{sig: sigReturn, val: value}, nil

	case *ast.Break:
		return control{sig: sigBreak, val: Nil{}}, nil

	case *ast.Continue:
		return control{sig: sigContinue, val: Nil{}}, nil

	case *ast.Print:
		value, err := in.evaluate(stmt.Expr, env)
		if err != nil {
			return normal, err
		}

		if _, err := io.WriteString(in.stdout, value.String()+"\n"); err != nil {
			return normal, &EvalError{Err: NewError("write failed").Wrap(err), Tok: stmt.Pos()}
		}

		return normal, nil
	}

	return normal, &EvalError{
		Err: NewError("unsupported statement"),
		Tok: stmt.Pos(),
	}
}

// executeBlock runs statements in order, stopping at the first
// non-normal signal and propagating it unchanged.
func (in *Interpreter) executeBlock(blk *ast.Block, env *Environment) (control, error) {
	for _, stmt := range blk.Stmts {
		ctl, err := in.execute(stmt, env)
		if err != nil {
			return normal, err
		}

		if ctl.sig != sigNormal {
			return ctl, nil
		}
	}

	return normal, nil
}

// executeWhile loops while the condition is truthy. A break signal
// ends the loop and converts to normal; a continue ends only the
// current iteration. A return signal propagates.
func (in *Interpreter) executeWhile(stmt *ast.While, env *Environment) (control, error) {
	for {
		cond, err := in.evaluate(stmt.Cond, env)
		if err != nil {
			return normal, err
		}

		if !Truthy(cond) {
			return normal, nil
		}

		ctl, err := in.execute(stmt.Body, env)
		if err != nil {
			return normal, err
		}

		switch ctl.sig {
		case sigBreak:
			return normal, nil
		case sigReturn:
			return ctl, nil
		}
	}
}

// evaluate computes the value of a single expression in env.
func (in *Interpreter) evaluate(expr ast.Expr, env *Environment) (Value, error) {
	switch expr := expr.(type) {
	case *ast.NumberLit:
		return Number(expr.Value), nil

	case *ast.StringLit:
		return String(expr.Value), nil

	case *ast.BoolLit:
		return Boolean(expr.Value), nil

	case *ast.NilLit:
		return Nil{}, nil

	case *ast.Identifier:
		value, ok := env.Get(expr.Name)
		if !ok {
			return nil, &EvalError{
				Err: ErrUndefinedVariable.With(slog.String("name", expr.Name)),
				Tok: expr.Pos(),
			}
		}

		return value, nil

	case *ast.Grouping:
		return in.evaluate(expr.Inner, env)

	case *ast.Unary:
		return in.evalUnary(expr, env)

	case *ast.Binary:
		return in.evalBinary(expr, env)

	case *ast.Logical:
		return in.evalLogical(expr, env)

	case *ast.Assign:
		value, err := in.evaluate(expr.Value, env)
		if err != nil {
			return nil, err
		}

		if !env.Assign(expr.Name.Lexeme, value) {
			return nil, &EvalError{
				Err: ErrUndefinedVariable.With(slog.String("name", expr.Name.Lexeme)),
				Tok: expr.Name,
			}
		}

		return value, nil

	case *ast.Call:
		return in.evalCall(expr, env)
	}

	return nil, &EvalError{
		Err: NewError("unsupported expression"),
		Tok: expr.Pos(),
	}
}

func (in *Interpreter) evalUnary(expr *ast.Unary, env *Environment) (Value, error) {
	operand, err := in.evaluate(expr.Operand, env)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.Minus:
		n, ok := operand.(Number)
		if !ok {
			return nil, in.typeMismatch(expr.Op, operand, nil)
		}

		return -n, nil

	case token.Bang:
		return Boolean(!Truthy(operand)), nil
	}

	return nil, &EvalError{Err: NewError("unsupported operator"), Tok: expr.Op}
}

func (in *Interpreter) evalBinary(expr *ast.Binary, env *Environment) (Value, error) {
	left, err := in.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := in.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.Equal:
		return Boolean(Equal(left, right)), nil
	case token.NotEqual:
		return Boolean(!Equal(left, right)), nil
	}

	// Every remaining operator is numeric on both sides.
	ln, lok := left.(Number)
	rn, rok := right.(Number)

	if !lok || !rok {
		return nil, in.typeMismatch(expr.Op, left, right)
	}

	switch expr.Op.Kind {
	case token.Plus:
		return ln + rn, nil
	case token.Minus:
		return ln - rn, nil
	case token.Star:
		return ln * rn, nil
	case token.Slash:
		if rn == 0 {
			return nil, &EvalError{Err: ErrDivisionByZero, Tok: expr.Op}
		}

		return ln / rn, nil
	case token.Less:
		return Boolean(ln < rn), nil
	case token.LessEqual:
		return Boolean(ln <= rn), nil
	case token.Greater:
		return Boolean(ln > rn), nil
	case token.GreaterEqual:
		return Boolean(ln >= rn), nil
	}

	return nil, &EvalError{Err: NewError("unsupported operator"), Tok: expr.Op}
}

// evalLogical short-circuits: the right operand is evaluated only
// when the left does not decide the result. The deciding operand's
// value is the result.
func (in *Interpreter) evalLogical(expr *ast.Logical, env *Environment) (Value, error) {
	left, err := in.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}

	if expr.Op.Kind == token.Or {
		if Truthy(left) {
			return left, nil
		}
	} else if !Truthy(left) {
		return left, nil
	}

	return in.evaluate(expr.Right, env)
}

// evalCall invokes a function or builtin value. A call scope's parent
// is the callee's captured environment, never the caller's.
func (in *Interpreter) evalCall(expr *ast.Call, env *Environment) (Value, error) {
	callee, err := in.evaluate(expr.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Args))

	for _, arg := range expr.Args {
		v, err := in.evaluate(arg, env)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *Function:
		return in.callFunction(fn, args, expr.Paren)

	case *Builtin:
		if len(args) != fn.Arity {
			return nil, in.arityMismatch(fn.Name, fn.Arity, len(args), expr.Paren)
		}

		return fn.Call(in, args)
	}

	return nil, &EvalError{
		Err: ErrNotCallable.With(slog.String("type", callee.Type().String())),
		Tok: expr.Paren,
	}
}

func (in *Interpreter) callFunction(fn *Function, args []Value, at token.Token) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, in.arityMismatch(fn.Name, len(fn.Params), len(args), at)
	}

	scope := fn.Env.Child()
	for i, param := range fn.Params {
		scope.Define(param.Lexeme, args[i])
	}

	ctl, err := in.executeBlock(fn.Body, scope)
	if err != nil {
		return nil, err
	}

	switch ctl.sig {
	case sigReturn:
		return ctl.val, nil
	case sigNormal:
		return Nil{}, nil
	}

	return nil, in.escaped(ctl, fn.Body)
}

func (in *Interpreter) arityMismatch(name string, want, got int, at token.Token) error {
	return &EvalError{
		Err: ErrArityMismatch.With(
			slog.String("function", name),
			slog.Int("want", want),
			slog.Int("got", got),
		).Wrap(NewError(name + " takes " + strconv.Itoa(want) +
			" arguments, got " + strconv.Itoa(got))),
		Tok: at,
	}
}

func (in *Interpreter) typeMismatch(op token.Token, left, right Value) error {
	attrs := []slog.Attr{
		slog.String("operator", op.Lexeme),
		slog.Any("left", logValue(left)),
	}

	if right != nil {
		attrs = append(attrs, slog.Any("right", logValue(right)))
	}

	return &EvalError{Err: ErrTypeMismatch.With(attrs...), Tok: op}
}
