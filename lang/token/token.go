// Package token defines the lexical tokens of the tali language.
package token

// Kind identifies the class of a lexical token.
type Kind int

const (
	// EOF is the sentinel kind terminating every token stream.
	EOF Kind = iota

	// Literals and identifiers
	Number
	String
	Ident

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Semicolon

	// Operators
	Plus
	Minus
	Star
	Slash
	Bang
	Assign
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Keywords
	Let
	Fn
	If
	Else
	While
	Return
	Break
	Continue
	Print
	And
	Or
	True
	False
	Nil
)

// String returns a human-readable name for the token kind, used in
// diagnostics ("unexpected token" messages and AST dumps).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

var kindNames = [...]string{
	EOF:          "end of input",
	Number:       "number",
	String:       "string",
	Ident:        "identifier",
	LParen:       "'('",
	RParen:       "')'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	Comma:        "','",
	Semicolon:    "';'",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	Bang:         "'!'",
	Assign:       "'='",
	Equal:        "'=='",
	NotEqual:     "'!='",
	Less:         "'<'",
	LessEqual:    "'<='",
	Greater:      "'>'",
	GreaterEqual: "'>='",
	Let:          "'let'",
	Fn:           "'fn'",
	If:           "'if'",
	Else:         "'else'",
	While:        "'while'",
	Return:       "'return'",
	Break:        "'break'",
	Continue:     "'continue'",
	Print:        "'print'",
	And:          "'and'",
	Or:           "'or'",
	True:         "'true'",
	False:        "'false'",
	Nil:          "'nil'",
}

// Token is a minimal lexical unit: its kind, the raw source text it was
// scanned from, and its 1-based source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// Keyword maps reserved identifier text to its keyword kind.
// Identifiers are matched against this table after scanning so that
// keywords are never produced as Ident tokens.
func Keyword(name string) (Kind, bool) {
	k, ok := keywords[name]

	return k, ok
}

var keywords = map[string]Kind{
	"let":      Let,
	"fn":       Fn,
	"if":       If,
	"else":     Else,
	"while":    While,
	"return":   Return,
	"break":    Break,
	"continue": Continue,
	"print":    Print,
	"and":      And,
	"or":       Or,
	"true":     True,
	"false":    False,
	"nil":      Nil,
}
