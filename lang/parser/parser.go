// Package parser builds a tali AST from a token stream.
//
// The parser is recursive descent with precedence climbing for binary
// expressions. It is fail-fast: the first syntax error aborts the parse
// of the whole program, and no partial AST is returned.
package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/tali-lang/tali/lang/ast"
	"github.com/tali-lang/tali/lang/lexer"
	"github.com/tali-lang/tali/lang/token"
)

// Error is a syntax error describing what the parser expected and the
// token it found instead.
type Error struct {
	Expected string
	Found    token.Token
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "expected " + e.Expected + ", found " + e.Found.Kind.String()
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("expected", e.Expected),
		slog.String("found", e.Found.Kind.String()),
		slog.Int("line", e.Found.Line),
		slog.Int("column", e.Found.Column),
	)
}

// Parser consumes tokens from a lexer and produces an AST.
type Parser struct {
	lex *lexer.Lexer
}

// New creates a parser over the given lexer.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse consumes the whole token stream and returns the program.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind == token.EOF {
			return prog, nil
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		prog.Stmts = append(prog.Stmts, stmt)
	}
}

// statement dispatches on the leading token of a statement form.
func (p *Parser) statement() (ast.Stmt, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.Let:
		return p.letStatement()
	case token.Fn:
		return p.fnDeclaration()
	case token.LBrace:
		return p.block()
	case token.If:
		return p.ifStatement()
	case token.While:
		return p.whileStatement()
	case token.Return:
		return p.returnStatement()
	case token.Break:
		kw := p.must()

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}

		return &ast.Break{Token: kw}, nil
	case token.Continue:
		kw := p.must()

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}

		return &ast.Continue{Token: kw}, nil
	case token.Print:
		return p.printStatement()
	default:
		return p.exprStatement()
	}
}

// letStatement parses: "let" identifier ("=" expression)? ";".
func (p *Parser) letStatement() (ast.Stmt, error) {
	kw := p.must()

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var init ast.Expr

	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == token.Assign {
		p.must()

		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.Let{Token: kw, Name: name, Init: init}, nil
}

// fnDeclaration parses: "fn" identifier "(" params ")" block.
func (p *Parser) fnDeclaration() (ast.Stmt, error) {
	kw := p.must()

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []token.Token

	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind != token.RParen {
		for {
			param, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}

			params = append(params, param)

			tok, err := p.lex.Peek()
			if err != nil {
				return nil, err
			}

			if tok.Kind != token.Comma {
				break
			}

			p.must()
		}
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	body, err := p.blockNode()
	if err != nil {
		return nil, err
	}

	return &ast.FnDecl{Token: kw, Name: name, Params: params, Body: body}, nil
}

// block parses a brace-delimited statement sequence.
func (p *Parser) block() (ast.Stmt, error) {
	return p.blockNode()
}

func (p *Parser) blockNode() (*ast.Block, error) {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}

	blk := &ast.Block{Token: open}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind == token.RBrace {
			p.must()

			return blk, nil
		}

		if tok.Kind == token.EOF {
			return nil, &Error{Expected: "'}'", Found: tok}
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		blk.Stmts = append(blk.Stmts, stmt)
	}
}

// ifStatement parses: "if" "(" expression ")" statement ("else" statement)?.
func (p *Parser) ifStatement() (ast.Stmt, error) {
	kw := p.must()

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	node := &ast.If{Token: kw, Cond: cond, Then: then}

	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == token.Else {
		p.must()

		node.Else, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// whileStatement parses: "while" "(" expression ")" statement.
func (p *Parser) whileStatement() (ast.Stmt, error) {
	kw := p.must()

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &ast.While{Token: kw, Cond: cond, Body: body}, nil
}

// returnStatement parses: "return" expression? ";".
func (p *Parser) returnStatement() (ast.Stmt, error) {
	kw := p.must()

	node := &ast.Return{Token: kw}

	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind != token.Semicolon {
		node.Value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return node, nil
}

// printStatement parses: "print" expression ";".
func (p *Parser) printStatement() (ast.Stmt, error) {
	kw := p.must()

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.Print{Token: kw, Expr: expr}, nil
}

// exprStatement parses: expression ";".
func (p *Parser) exprStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Expr: expr}, nil
}

// Expressions, loosest binding first.

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment parses: logical-or ("=" assignment)?. The target of an
// assignment must be a plain identifier.
func (p *Parser) assignment() (ast.Expr, error) {
	left, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind != token.Assign {
		return left, nil
	}

	eq := p.must()

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	ident, ok := left.(*ast.Identifier)
	if !ok {
		return nil, &Error{Expected: "assignment target", Found: eq}
	}

	return &ast.Assign{Name: ident.Token, Value: value}, nil
}

func (p *Parser) logicalOr() (ast.Expr, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind != token.Or {
			return left, nil
		}

		op := p.must()

		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}

		left = &ast.Logical{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) logicalAnd() (ast.Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind != token.And {
			return left, nil
		}

		op := p.must()

		right, err := p.equality()
		if err != nil {
			return nil, err
		}

		left = &ast.Logical{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.Equal, token.NotEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.additive,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}

func (p *Parser) additive() (ast.Expr, error) {
	return p.binary(p.multiplicative, token.Plus, token.Minus)
}

func (p *Parser) multiplicative() (ast.Expr, error) {
	return p.binary(p.unary, token.Star, token.Slash)
}

// binary parses a left-associative run of the given operators, with
// operands produced by the next-tighter rule.
func (p *Parser) binary(
	next func() (ast.Expr, error),
	ops ...token.Kind,
) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		matched := false

		for _, op := range ops {
			if tok.Kind == op {
				matched = true

				break
			}
		}

		if !matched {
			return left, nil
		}

		op := p.must()

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// unary parses: ("-" | "!") unary | callExpr.
func (p *Parser) unary() (ast.Expr, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == token.Minus || tok.Kind == token.Bang {
		op := p.must()

		operand, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Op: op, Operand: operand}, nil
	}

	return p.callExpr()
}

// callExpr parses a primary expression followed by any number of call
// argument lists, so f(1)(2) parses as two nested calls.
func (p *Parser) callExpr() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind != token.LParen {
			return expr, nil
		}

		p.must()

		var args []ast.Expr

		tok, err = p.lex.Peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind != token.RParen {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}

				args = append(args, arg)

				tok, err := p.lex.Peek()
				if err != nil {
					return nil, err
				}

				if tok.Kind != token.Comma {
					break
				}

				p.must()
			}
		}

		rparen, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}

		expr = &ast.Call{Callee: expr, Paren: rparen, Args: args}
	}
}

// primary parses literals, identifiers, and grouping.
func (p *Parser) primary() (ast.Expr, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.Number:
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &Error{Expected: "valid number literal", Found: tok}
		}

		return &ast.NumberLit{Token: tok, Value: value}, nil

	case token.String:
		return &ast.StringLit{Token: tok, Value: unquote(tok.Lexeme)}, nil

	case token.True:
		return &ast.BoolLit{Token: tok, Value: true}, nil

	case token.False:
		return &ast.BoolLit{Token: tok, Value: false}, nil

	case token.Nil:
		return &ast.NilLit{Token: tok}, nil

	case token.Ident:
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil

	case token.LParen:
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}

		return &ast.Grouping{Token: tok, Inner: inner}, nil
	}

	return nil, &Error{Expected: "expression", Found: tok}
}

// expect consumes the next token, requiring the given kind.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return token.Token{}, err
	}

	if tok.Kind != kind {
		return token.Token{}, &Error{Expected: kind.String(), Found: tok}
	}

	return tok, nil
}

// must consumes a token already matched by Peek. The lexer cannot fail
// on a buffered token.
func (p *Parser) must() token.Token {
	tok, _ := p.lex.Next()

	return tok
}

// unquote decodes the escape sequences of a string literal lexeme. The
// lexer has already validated the delimiters and escapes.
func unquote(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder

	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			sb.WriteByte(body[i])

			continue
		}

		i++

		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		}
	}

	return sb.String()
}
