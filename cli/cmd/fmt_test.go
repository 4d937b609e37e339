package cmd

import (
	"context"
	"testing"
)

// TestTreeFmtValidSyntax tests that valid scripts render without error.
func TestTreeFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "simple declaration",
			input: "let x = 1;",
		},
		{
			name:  "function and call",
			input: "fn add(a, b) { return a + b; } add(1, 2);",
		},
		{
			name:  "control flow",
			input: "let i = 0; while (i < 3) { i = i + 1; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, t.TempDir(), "in.tali", tt.input)

			tree := &Tree{Source: path}

			if err := tree.Run(context.Background()); err != nil {
				t.Errorf("Tree.Run() error = %v, want nil", err)
			}
		})
	}
}

// TestFmtInvalidSyntax tests that malformed scripts produce parse errors in
// every output format.
func TestFmtInvalidSyntax(t *testing.T) {
	const input = "let = 1;"

	path := writeScript(t, t.TempDir(), "bad.tali", input)

	runs := []struct {
		name string
		run  func() error
	}{
		{"tree", func() error {
			c := &Tree{Source: path}

			return c.Run(context.Background())
		}},
		{"json", func() error {
			c := &JSON{Indent: 2, Source: path}

			return c.Run(context.Background())
		}},
		{"yaml", func() error {
			c := &YAML{Indent: 2, Source: path}

			return c.Run(context.Background())
		}},
	}

	for _, tt := range runs {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); err == nil {
				t.Error("Run() should fail on a syntax error")
			}
		})
	}
}

// TestFmtJSONAndYAML tests that structured output formats render without
// error.
func TestFmtJSONAndYAML(t *testing.T) {
	path := writeScript(t, t.TempDir(), "in.tali", "print 1 + 2;")

	j := &JSON{Indent: 2, Source: path}
	if err := j.Run(context.Background()); err != nil {
		t.Errorf("JSON.Run() error = %v, want nil", err)
	}

	y := &YAML{Indent: 2, Source: path}
	if err := y.Run(context.Background()); err != nil {
		t.Errorf("YAML.Run() error = %v, want nil", err)
	}
}

// TestFmtTokens tests the token stream dump.
func TestFmtTokens(t *testing.T) {
	path := writeScript(t, t.TempDir(), "in.tali", "let x = 1;")

	c := &Tokens{Source: path}
	if err := c.Run(context.Background()); err != nil {
		t.Errorf("Tokens.Run() error = %v, want nil", err)
	}

	bad := writeScript(t, t.TempDir(), "bad.tali", `"unterminated`)

	c = &Tokens{Source: bad}
	if err := c.Run(context.Background()); err == nil {
		t.Error("Tokens.Run() should fail on a lex error")
	}
}

func TestIndentOf(t *testing.T) {
	tests := []struct {
		width int
		want  string
	}{
		{0, ""},
		{2, "  "},
		{4, "    "},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := indentOf(tt.width); got != tt.want {
			t.Errorf("indentOf(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}
