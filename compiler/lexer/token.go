package lexer

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	EOF TokenType = iota

	// Punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Dot

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign // "="
	Eq     // "=="
	Ne     // "!="
	Lt
	Le
	Gt
	Ge

	// Literals and identifiers
	Ident
	Int
	Float
	Str

	// Keywords
	KwAnd
	KwOr
	KwNot
	KwIf
	KwThen
	KwElse
	KwWhere
	KwTrue
	KwFalse
)

var tokenNames = map[TokenType]string{
	EOF:      "end of input",
	LParen:   "'('",
	RParen:   "')'",
	LBracket: "'['",
	RBracket: "']'",
	LBrace:   "'{'",
	RBrace:   "'}'",
	Comma:    "','",
	Colon:    "':'",
	Dot:      "'.'",
	Plus:     "'+'",
	Minus:    "'-'",
	Star:     "'*'",
	Slash:    "'/'",
	Percent:  "'%'",
	Assign:   "'='",
	Eq:       "'=='",
	Ne:       "'!='",
	Lt:       "'<'",
	Le:       "'<='",
	Gt:       "'>'",
	Ge:       "'>='",
	Ident:    "identifier",
	Int:      "integer literal",
	Float:    "float literal",
	Str:      "string literal",
	KwAnd:    "'and'",
	KwOr:     "'or'",
	KwNot:    "'not'",
	KwIf:     "'if'",
	KwThen:   "'then'",
	KwElse:   "'else'",
	KwWhere:  "'where'",
	KwTrue:   "'true'",
	KwFalse:  "'false'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"and":   KwAnd,
	"or":    KwOr,
	"not":   KwNot,
	"if":    KwIf,
	"then":  KwThen,
	"else":  KwElse,
	"where": KwWhere,
	"true":  KwTrue,
	"false": KwFalse,
}

// Pos is a position in the source text. Line and Col are 1-based,
// Offset is a byte offset.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span covers a half-open byte range of the source.
type Span struct {
	Start Pos
	End   Pos
}

// Join spans from the start of a to the end of b.
func (a Span) Join(b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

// Token is a lexical token. Lexeme is the raw source slice; literal
// decoding happens in the parser.
type Token struct {
	Type   TokenType
	Lexeme string
	Span   Span
}
