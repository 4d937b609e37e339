// Package ast defines the abstract syntax tree of the tali language.
//
// Expressions and statements are closed tagged variants: each category
// is a small interface implemented only by the node structs in this
// package, and evaluation dispatches on the concrete type. The nodes
// carry no behavior beyond position reporting and formatting.
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tali-lang/tali/lang/token"
)

// Expr is a tali expression node.
type Expr interface {
	// Pos returns the token anchoring the node's source position.
	Pos() token.Token

	expr()
}

// Stmt is a tali statement node.
type Stmt interface {
	Pos() token.Token

	stmt()
}

// Program is an ordered sequence of top-level statements.
type Program struct {
	Stmts []Stmt
}

// Expressions

// NumberLit is a numeric literal.
type NumberLit struct {
	Token token.Token
	Value float64
}

// StringLit is a string literal with escape sequences already decoded.
type StringLit struct {
	Token token.Token
	Value string
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Token token.Token
	Value bool
}

// NilLit is the nil literal.
type NilLit struct {
	Token token.Token
}

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token
	Name  string
}

// Unary is a prefix operator application.
type Unary struct {
	Op      token.Token
	Operand Expr
}

// Binary is an arithmetic or comparison operator application.
type Binary struct {
	Op    token.Token
	Left  Expr
	Right Expr
}

// Logical is a short-circuiting and/or application. It is distinct from
// Binary because the right operand is evaluated conditionally.
type Logical struct {
	Op    token.Token
	Left  Expr
	Right Expr
}

// Call is a function invocation.
type Call struct {
	Callee Expr
	Paren  token.Token // closing parenthesis, for diagnostics
	Args   []Expr
}

// Assign mutates an existing binding. Assignment never declares.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Grouping is a parenthesized expression, kept as a node so formatting
// round-trips and tests can assert structure.
type Grouping struct {
	Token token.Token // opening parenthesis
	Inner Expr
}

func (n *NumberLit) Pos() token.Token { return n.Token }
func (n *StringLit) Pos() token.Token { return n.Token }
func (n *BoolLit) Pos() token.Token { return n.Token }
func (n *NilLit) Pos() token.Token { return n.Token }
func (n *Identifier) Pos() token.Token { return n.Token }
func (n *Unary) Pos() token.Token { return n.Op }
func (n *Binary) Pos() token.Token { return n.Op }
func (n *Logical) Pos() token.Token { return n.Op }
func (n *Call) Pos() token.Token { return n.Paren }
func (n *Assign) Pos() token.Token { return n.Name }
func (n *Grouping) Pos() token.Token { return n.Token }

func (*NumberLit) expr()  {}
func (*StringLit) expr()  {}
func (*BoolLit) expr()    {}
func (*NilLit) expr()     {}
func (*Identifier) expr() {}
func (*Unary) expr()      {}
func (*Binary) expr()     {}
func (*Logical) expr()    {}
func (*Call) expr()       {}
func (*Assign) expr()     {}
func (*Grouping) expr()   {}

// Statements

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Expr Expr
}

// Let declares a new binding in the current scope. Init may be nil, in
// which case the binding starts out nil.
type Let struct {
	Token token.Token // the 'let' keyword
	Name  token.Token
	Init  Expr
}

// Block is a brace-delimited statement sequence introducing a scope.
type Block struct {
	Token token.Token // opening brace
	Stmts []Stmt
}

// If is a conditional with an optional else branch.
type If struct {
	Token token.Token
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when absent
}

// While is a pre-tested loop.
type While struct {
	Token token.Token
	Cond  Expr
	Body  Stmt
}

// FnDecl declares a named function.
type FnDecl struct {
	Token  token.Token // the 'fn' keyword
	Name   token.Token
	Params []token.Token
	Body   *Block
}

// Return exits the enclosing function. Value may be nil.
type Return struct {
	Token token.Token
	Value Expr
}

// Break terminates the enclosing loop.
type Break struct {
	Token token.Token
}

// Continue ends the current iteration of the enclosing loop.
type Continue struct {
	Token token.Token
}

// Print writes the value of an expression to the program's output.
type Print struct {
	Token token.Token
	Expr  Expr
}

func (n *ExprStmt) Pos() token.Token { return n.Expr.Pos() }
func (n *Let) Pos() token.Token { return n.Token }
func (n *Block) Pos() token.Token { return n.Token }
func (n *If) Pos() token.Token { return n.Token }
func (n *While) Pos() token.Token { return n.Token }
func (n *FnDecl) Pos() token.Token { return n.Token }
func (n *Return) Pos() token.Token { return n.Token }
func (n *Break) Pos() token.Token { return n.Token }
func (n *Continue) Pos() token.Token { return n.Token }
func (n *Print) Pos() token.Token { return n.Token }


func (*ExprStmt) stmt() {}
func (*Let) stmt()      {}
func (*Block) stmt()    {}
func (*If) stmt()       {}
func (*While) stmt()    {}
func (*FnDecl) stmt()   {}
func (*Return) stmt()   {}
func (*Break) stmt()    {}
func (*Continue) stmt() {}
func (*Print) stmt()    {}

// Print writes an indented tree representation of the program.
func (p *Program) Print(w io.Writer) error {
	for _, s := range p.Stmts {
		if err := printStmt(w, s, 0); err != nil {
			return err
		}
	}

	return nil
}

func put(w io.Writer, indent int, items ...string) error {
	_, err := io.WriteString(
		w, strings.Repeat("  ", indent)+strings.Join(items, " ")+"\n")

	return err
}

func printStmt(w io.Writer, s Stmt, indent int) error {
	switch n := s.(type) {
	case *ExprStmt:
		if err := put(w, indent, "ExprStmt"); err != nil {
			return err
		}

		return printExpr(w, n.Expr, indent+1)

	case *Let:
		if err := put(w, indent, "Let", n.Name.Lexeme); err != nil {
			return err
		}

		if n.Init != nil {
			return printExpr(w, n.Init, indent+1)
		}

		return nil

	case *Block:
		if err := put(w, indent, "Block"); err != nil {
			return err
		}

		for _, inner := range n.Stmts {
			if err := printStmt(w, inner, indent+1); err != nil {
				return err
			}
		}

		return nil

	case *If:
		if err := put(w, indent, "If"); err != nil {
			return err
		}

		if err := printExpr(w, n.Cond, indent+1); err != nil {
			return err
		}

		if err := printStmt(w, n.Then, indent+1); err != nil {
			return err
		}

		if n.Else != nil {
			if err := put(w, indent, "Else"); err != nil {
				return err
			}

			return printStmt(w, n.Else, indent+1)
		}

		return nil

	case *While:
		if err := put(w, indent, "While"); err != nil {
			return err
		}

		if err := printExpr(w, n.Cond, indent+1); err != nil {
			return err
		}

		return printStmt(w, n.Body, indent+1)

	case *FnDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}

		err := put(w, indent,
			"Fn", n.Name.Lexeme, "("+strings.Join(params, ", ")+")")
		if err != nil {
			return err
		}

		return printStmt(w, n.Body, indent+1)

	case *Return:
		if err := put(w, indent, "Return"); err != nil {
			return err
		}

		if n.Value != nil {
			return printExpr(w, n.Value, indent+1)
		}

		return nil

	case *Break:
		return put(w, indent, "Break")

	case *Continue:
		return put(w, indent, "Continue")

	case *Print:
		if err := put(w, indent, "Print"); err != nil {
			return err
		}

		return printExpr(w, n.Expr, indent+1)

	default:
		return fmt.Errorf("unknown statement %T", s)
	}
}

func printExpr(w io.Writer, e Expr, indent int) error {
	switch n := e.(type) {
	case *NumberLit:
		return put(w, indent,
			"Number", strconv.FormatFloat(n.Value, 'f', -1, 64))

	case *StringLit:
		return put(w, indent, "String", strconv.Quote(n.Value))

	case *BoolLit:
		return put(w, indent, "Bool", strconv.FormatBool(n.Value))

	case *NilLit:
		return put(w, indent, "Nil")

	case *Identifier:
		return put(w, indent, "Identifier", n.Name)

	case *Unary:
		if err := put(w, indent, "Unary", n.Op.Lexeme); err != nil {
			return err
		}

		return printExpr(w, n.Operand, indent+1)

	case *Binary:
		if err := put(w, indent, "Binary", n.Op.Lexeme); err != nil {
			return err
		}

		if err := printExpr(w, n.Left, indent+1); err != nil {
			return err
		}

		return printExpr(w, n.Right, indent+1)

	case *Logical:
		if err := put(w, indent, "Logical", n.Op.Lexeme); err != nil {
			return err
		}

		if err := printExpr(w, n.Left, indent+1); err != nil {
			return err
		}

		return printExpr(w, n.Right, indent+1)

	case *Call:
		if err := put(w, indent, "Call"); err != nil {
			return err
		}

		if err := printExpr(w, n.Callee, indent+1); err != nil {
			return err
		}

		for _, arg := range n.Args {
			if err := printExpr(w, arg, indent+1); err != nil {
				return err
			}
		}

		return nil

	case *Assign:
		if err := put(w, indent, "Assign", n.Name.Lexeme); err != nil {
			return err
		}

		return printExpr(w, n.Value, indent+1)

	case *Grouping:
		if err := put(w, indent, "Grouping"); err != nil {
			return err
		}

		return printExpr(w, n.Inner, indent+1)

	default:
		return fmt.Errorf("unknown expression %T", e)
	}
}
