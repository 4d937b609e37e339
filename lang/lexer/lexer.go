// Package lexer converts tali source text into a stream of tokens.
//
// The lexer scans eagerly or lazily: [Lexer.Scan] collects the entire
// stream, while [Lexer.Next] and [Lexer.Peek] step through it one token
// at a time. Both forms terminate with exactly one [token.EOF] sentinel.
package lexer

import (
	"log/slog"
	"strings"

	"github.com/tali-lang/tali/lang/token"
)

// Error is a lexical error with the 1-based position of the offending
// input. It implements slog.LogValuer so positions ride along when the
// error is logged.
type Error struct {
	Msg    string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Msg }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	)
}

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of the token being scanned
	cur    int // current index
	line   int // 1-based line of cur
	col    int // 1-based column of cur
	tline  int // line of start
	tcol   int // column of start
	peeked *token.Token
}

// New creates a lexer for the given source text.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes the remaining input eagerly. On success the returned
// slice is terminated by exactly one EOF token. The first lexical error
// aborts the scan.
func (l *Lexer) Scan() ([]token.Token, error) {
	var toks []token.Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}

	tok, err := l.Next()
	if err != nil {
		return token.Token{}, err
	}

	l.peeked = &tok

	return tok, nil
}

// Next consumes and returns the next token. After the EOF sentinel has
// been returned, Next keeps returning EOF at the same position.
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil

		return tok, nil
	}

	l.skipBlanks()

	l.start = l.cur
	l.tline, l.tcol = l.line, l.col

	if l.atEnd() {
		return l.make(token.EOF), nil
	}

	ch := l.advance()

	switch ch {
	case '(':
		return l.make(token.LParen), nil
	case ')':
		return l.make(token.RParen), nil
	case '{':
		return l.make(token.LBrace), nil
	case '}':
		return l.make(token.RBrace), nil
	case ',':
		return l.make(token.Comma), nil
	case ';':
		return l.make(token.Semicolon), nil
	case '+':
		return l.make(token.Plus), nil
	case '-':
		return l.make(token.Minus), nil
	case '*':
		return l.make(token.Star), nil
	case '/':
		return l.make(token.Slash), nil

	// Two-character operators match longest-first: "==" before "=".
	case '=':
		if l.match('=') {
			return l.make(token.Equal), nil
		}

		return l.make(token.Assign), nil
	case '!':
		if l.match('=') {
			return l.make(token.NotEqual), nil
		}

		return l.make(token.Bang), nil
	case '<':
		if l.match('=') {
			return l.make(token.LessEqual), nil
		}

		return l.make(token.Less), nil
	case '>':
		if l.match('=') {
			return l.make(token.GreaterEqual), nil
		}

		return l.make(token.Greater), nil

	case '"':
		return l.scanString()
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	if isAlpha(ch) {
		return l.scanIdent(), nil
	}

	return token.Token{}, &Error{
		Msg:    "invalid character " + quoteByte(ch),
		Line:   l.tline,
		Column: l.tcol,
	}
}

// skipBlanks consumes whitespace and line comments without emitting
// tokens for them.
func (l *Lexer) skipBlanks() {
	for !l.atEnd() {
		switch l.src[l.cur] {
		case ' ', '\t', '\r', '\n':
			l.advance()

		case '/':
			if l.cur+1 >= len(l.src) || l.src[l.cur+1] != '/' {
				return
			}

			for !l.atEnd() && l.src[l.cur] != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

// scanString consumes a double-quoted string literal. The opening quote
// has already been consumed. Escape sequences are validated here but
// decoded later by the parser, so Lexeme retains the raw source text.
func (l *Lexer) scanString() (token.Token, error) {
	for !l.atEnd() {
		ch := l.advance()

		switch ch {
		case '"':
			return l.make(token.String), nil

		case '\\':
			if l.atEnd() {
				break
			}

			esc := l.advance()
			switch esc {
			case 'n', 't', 'r', '"', '\\':
			default:
				return token.Token{}, &Error{
					Msg:    "invalid escape sequence \\" + string(esc),
					Line:   l.line,
					Column: l.col - 2,
				}
			}

		case '\n':
			// Strings do not span lines; report at the opening quote.
			return token.Token{}, l.unterminated()
		}
	}

	return token.Token{}, l.unterminated()
}

func (l *Lexer) unterminated() error {
	return &Error{
		Msg:    "unterminated string literal",
		Line:   l.tline,
		Column: l.tcol,
	}
}

// scanNumber consumes an integer or decimal literal. The leading digit
// has already been consumed.
func (l *Lexer) scanNumber() token.Token {
	for !l.atEnd() && isDigit(l.src[l.cur]) {
		l.advance()
	}

	// A decimal point must be followed by at least one digit.
	if !l.atEnd() && l.src[l.cur] == '.' &&
		l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
		l.advance()

		for !l.atEnd() && isDigit(l.src[l.cur]) {
			l.advance()
		}
	}

	return l.make(token.Number)
}

// scanIdent consumes an identifier and reclassifies reserved words.
func (l *Lexer) scanIdent() token.Token {
	for !l.atEnd() && isAlphaNum(l.src[l.cur]) {
		l.advance()
	}

	if kind, ok := token.Keyword(l.src[l.start:l.cur]); ok {
		return l.make(kind)
	}

	return l.make(token.Ident)
}

func (l *Lexer) make(kind token.Kind) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tline,
		Column: l.tcol,
	}
}

func (l *Lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++

	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return ch
}

// match consumes the next byte only if it equals want.
func (l *Lexer) match(want byte) bool {
	if l.atEnd() || l.src[l.cur] != want {
		return false
	}

	l.advance()

	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// quoteByte renders a byte for an error message, escaping non-printable
// input rather than echoing it raw.
func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "'" + string(b) + "'"
	}

	var sb strings.Builder

	sb.WriteString("0x")

	const hex = "0123456789abcdef"

	sb.WriteByte(hex[b>>4])
	sb.WriteByte(hex[b&0xf])

	return sb.String()
}
