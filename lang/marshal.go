package lang

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/tali-lang/tali/lang/ast"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// MarshalYAML renders the program's syntax tree as YAML.
func (p *Program) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(p.ToMap())
}

// ToMap converts the syntax tree to a native Go structure suitable
// for serialization. Each node becomes a map with a "node" key naming
// its kind.
func (p *Program) ToMap() map[string]any {
	stmts := make([]any, 0, len(p.Tree.Stmts))
	for _, stmt := range p.Tree.Stmts {
		stmts = append(stmts, stmtToMap(stmt))
	}

	return map[string]any{
		"node":       "program",
		"statements": stmts,
	}
}

func stmtToMap(stmt ast.Stmt) map[string]any {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		return map[string]any{
			"node":       "expression-statement",
			"expression": exprToMap(stmt.Expr),
		}

	case *ast.Let:
		m := map[string]any{
			"node": "let",
			"name": stmt.Name.Lexeme,
		}
		if stmt.Init != nil {
			m["initializer"] = exprToMap(stmt.Init)
		}

		return m

	case *ast.Block:
		stmts := make([]any, 0, len(stmt.Stmts))
		for _, s := range stmt.Stmts {
			stmts = append(stmts, stmtToMap(s))
		}

		return map[string]any{
			"node":       "block",
			"statements": stmts,
		}

	case *ast.If:
		m := map[string]any{
			"node":      "if",
			"condition": exprToMap(stmt.Cond),
			"then":      stmtToMap(stmt.Then),
		}
		if stmt.Else != nil {
			m["else"] = stmtToMap(stmt.Else)
		}

		return m

	case *ast.While:
		return map[string]any{
			"node":      "while",
			"condition": exprToMap(stmt.Cond),
			"body":      stmtToMap(stmt.Body),
		}

	case *ast.FnDecl:
		params := make([]any, 0, len(stmt.Params))
		for _, p := range stmt.Params {
			params = append(params, p.Lexeme)
		}

		return map[string]any{
			"node":       "function",
			"name":       stmt.Name.Lexeme,
			"parameters": params,
			"body":       stmtToMap(stmt.Body),
		}

	case *ast.Return:
		m := map[string]any{"node": "return"}
		if stmt.Value != nil {
			m["value"] = exprToMap(stmt.Value)
		}

		return m

	case *ast.Break:
		return map[string]any{"node": "break"}

	case *ast.Continue:
		return map[string]any{"node": "continue"}

	case *ast.Print:
		return map[string]any{
			"node":       "print",
			"expression": exprToMap(stmt.Expr),
		}
	}

	return map[string]any{"node": "unknown"}
}

func exprToMap(expr ast.Expr) map[string]any {
	switch expr := expr.(type) {
	case *ast.NumberLit:
		return map[string]any{"node": "number", "value": expr.Value}

	case *ast.StringLit:
		return map[string]any{"node": "string", "value": expr.Value}

	case *ast.BoolLit:
		return map[string]any{"node": "boolean", "value": expr.Value}

	case *ast.NilLit:
		return map[string]any{"node": "nil"}

	case *ast.Identifier:
		return map[string]any{"node": "identifier", "name": expr.Name}

	case *ast.Unary:
		return map[string]any{
			"node":     "unary",
			"operator": expr.Op.Lexeme,
			"operand":  exprToMap(expr.Operand),
		}

	case *ast.Binary:
		return map[string]any{
			"node":     "binary",
			"operator": expr.Op.Lexeme,
			"left":     exprToMap(expr.Left),
			"right":    exprToMap(expr.Right),
		}

	case *ast.Logical:
		return map[string]any{
			"node":     "logical",
			"operator": expr.Op.Lexeme,
			"left":     exprToMap(expr.Left),
			"right":    exprToMap(expr.Right),
		}

	case *ast.Call:
		args := make([]any, 0, len(expr.Args))
		for _, arg := range expr.Args {
			args = append(args, exprToMap(arg))
		}

		return map[string]any{
			"node":      "call",
			"callee":    exprToMap(expr.Callee),
			"arguments": args,
		}

	case *ast.Assign:
		return map[string]any{
			"node":  "assign",
			"name":  expr.Name.Lexeme,
			"value": exprToMap(expr.Value),
		}

	case *ast.Grouping:
		return map[string]any{
			"node":  "grouping",
			"inner": exprToMap(expr.Inner),
		}
	}

	return map[string]any{"node": "unknown"}
}
