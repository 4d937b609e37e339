package lexer

import (
	"strings"
	"testing"

	"github.com/tali-lang/tali/lang/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func TestScan_Empty(t *testing.T) {
	toks, err := New("").Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected single EOF token, got %v", toks)
	}
}

func TestScan_Statement(t *testing.T) {
	toks, err := New(`let x = 5;`).Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []token.Kind{
		token.Let, token.Ident, token.Assign, token.Number,
		token.Semicolon, token.EOF,
	}

	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScan_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"==", []token.Kind{token.Equal, token.EOF}},
		{"= =", []token.Kind{token.Assign, token.Assign, token.EOF}},
		{"!=", []token.Kind{token.NotEqual, token.EOF}},
		{"!", []token.Kind{token.Bang, token.EOF}},
		{"<=", []token.Kind{token.LessEqual, token.EOF}},
		{"<", []token.Kind{token.Less, token.EOF}},
		{">=", []token.Kind{token.GreaterEqual, token.EOF}},
		{"> =", []token.Kind{token.Greater, token.Assign, token.EOF}},
	}

	for _, tt := range tests {
		toks, err := New(tt.input).Scan()
		if err != nil {
			t.Fatalf("%q: scan error: %v", tt.input, err)
		}

		got := kinds(toks)
		if len(got) != len(tt.want) {
			t.Fatalf("%q: expected %v, got %v", tt.input, tt.want, got)
		}

		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%q token %d: expected %v, got %v",
					tt.input, i, tt.want[i], got[i])
			}
		}
	}
}

func TestScan_Keywords(t *testing.T) {
	input := "let fn if else while return break continue print and or true false nil letter"

	toks, err := New(input).Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []token.Kind{
		token.Let, token.Fn, token.If, token.Else, token.While,
		token.Return, token.Break, token.Continue, token.Print,
		token.And, token.Or, token.True, token.False, token.Nil,
		token.Ident, // "letter" is not a keyword
		token.EOF,
	}

	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScan_Positions(t *testing.T) {
	toks, err := New("let x;\n  x = 1;").Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	// let(1,1) x(1,5) ;(1,6) x(2,3) =(2,5) 1(2,7) ;(2,8) EOF
	wantPos := [][2]int{
		{1, 1}, {1, 5}, {1, 6}, {2, 3}, {2, 5}, {2, 7}, {2, 8},
	}

	for i, want := range wantPos {
		if toks[i].Line != want[0] || toks[i].Column != want[1] {
			t.Errorf("token %d %q: expected %d:%d, got %d:%d",
				i, toks[i].Lexeme, want[0], want[1],
				toks[i].Line, toks[i].Column)
		}
	}
}

func TestScan_Comments(t *testing.T) {
	toks, err := New("// leading\nlet x; // trailing\n// full line").Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []token.Kind{token.Let, token.Ident, token.Semicolon, token.EOF}

	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScan_Strings(t *testing.T) {
	toks, err := New(`"hello" "with \"quotes\"" "tab\there"`).Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if len(toks) != 4 {
		t.Fatalf("expected 3 strings + EOF, got %v", toks)
	}

	if toks[0].Lexeme != `"hello"` {
		t.Errorf("expected raw lexeme with quotes, got %q", toks[0].Lexeme)
	}
}

func TestScan_Numbers(t *testing.T) {
	toks, err := New("12 3.25 0.5").Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[0].Lexeme != "12" || toks[0].Kind != token.Number {
		t.Errorf("expected number 12, got %v", toks[0])
	}

	if toks[1].Lexeme != "3.25" {
		t.Errorf("expected number 3.25, got %v", toks[1])
	}

	if toks[2].Lexeme != "0.5" {
		t.Errorf("expected number 0.5, got %v", toks[2])
	}
}

func TestScan_TrailingDot(t *testing.T) {
	// A decimal point not followed by a digit is not part of the number,
	// and a bare dot is not in the language's alphabet.
	l := New("7.")

	tok, err := l.Next()
	if err != nil {
		t.Fatalf("next error: %v", err)
	}

	if tok.Kind != token.Number || tok.Lexeme != "7" {
		t.Fatalf("expected number 7, got %v", tok)
	}

	if _, err := l.Next(); err == nil {
		t.Fatal("expected invalid character error for bare '.'")
	}
}

func TestScan_UnterminatedString(t *testing.T) {
	_, err := New("let s = \"oops;\nprint s;").Scan()
	if err == nil {
		t.Fatal("expected unterminated string error")
	}

	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}

	if !strings.Contains(lexErr.Msg, "unterminated") {
		t.Errorf("unexpected message: %q", lexErr.Msg)
	}

	if lexErr.Line != 1 || lexErr.Column != 9 {
		t.Errorf("expected position 1:9 (opening quote), got %d:%d",
			lexErr.Line, lexErr.Column)
	}
}

func TestScan_InvalidCharacter(t *testing.T) {
	_, err := New("let x = 1 @ 2;").Scan()
	if err == nil {
		t.Fatal("expected invalid character error")
	}

	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}

	if !strings.Contains(lexErr.Msg, "invalid character") {
		t.Errorf("unexpected message: %q", lexErr.Msg)
	}

	if lexErr.Column != 11 {
		t.Errorf("expected column 11, got %d", lexErr.Column)
	}
}

func TestPeek_DoesNotConsume(t *testing.T) {
	l := New("1 x")

	p1, err := l.Peek()
	if err != nil {
		t.Fatalf("peek error: %v", err)
	}

	p2, err := l.Peek()
	if err != nil {
		t.Fatalf("peek error: %v", err)
	}

	if p1 != p2 {
		t.Errorf("repeated peek differs: %v vs %v", p1, p2)
	}

	n, err := l.Next()
	if err != nil {
		t.Fatalf("next error: %v", err)
	}

	if n != p1 {
		t.Errorf("next does not match peek: %v vs %v", n, p1)
	}

	n2, err := l.Next()
	if err != nil {
		t.Fatalf("next error: %v", err)
	}

	if n2.Kind != token.Ident || n2.Lexeme != "x" {
		t.Errorf("expected identifier x, got %v", n2)
	}
}

// Re-lexing the concatenation of all lexemes separated by spaces must
// reproduce the same token kinds and lexemes (positions may differ).
func TestScan_RoundTrip(t *testing.T) {
	input := `let add = 1; fn f(a, b) { return a + b * 2 <= 3; } print "hi\n";`

	first, err := New(input).Scan()
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	parts := make([]string, 0, len(first))
	for _, tok := range first {
		if tok.Kind != token.EOF {
			parts = append(parts, tok.Lexeme)
		}
	}

	second, err := New(strings.Join(parts, " ")).Scan()
	if err != nil {
		t.Fatalf("re-scan error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("token count differs: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Kind != second[i].Kind ||
			first[i].Lexeme != second[i].Lexeme {
			t.Errorf("token %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestScan_AfterEOF(t *testing.T) {
	l := New("x")

	for i := 0; i < 2; i++ {
		if _, err := l.Next(); err != nil {
			t.Fatalf("next error: %v", err)
		}
	}

	// The stream stays terminated: every further Next is EOF.
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("next after EOF error: %v", err)
		}

		if tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok)
		}
	}
}
