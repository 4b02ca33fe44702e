package lexer

import "fmt"

// Error is a lexical error with its source position.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lexer scans an expression source string into tokens. The scanner is
// byte-oriented; identifiers are ASCII, string literals may carry
// arbitrary UTF-8 between the quotes.
type Lexer struct {
	src  string
	cur  int
	line int
	col  int
}

func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes the whole input. The returned slice always ends with
// an EOF token carrying the final position.
func Scan(src string) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) pos() Pos {
	return Pos{Offset: l.cur, Line: l.line, Col: l.col}
}

func (l *Lexer) atEnd() bool {
	return l.cur >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) advance() byte {
	b := l.src[l.cur]
	l.cur++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) token(t TokenType, start Pos) Token {
	return Token{
		Type:   t,
		Lexeme: l.src[start.Offset:l.cur],
		Span:   Span{Start: start, End: l.pos()},
	}
}

func (l *Lexer) errf(pos Pos, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) next() (Token, error) {
	l.skipTrivia()
	start := l.pos()
	if l.atEnd() {
		return l.token(EOF, start), nil
	}

	b := l.advance()
	switch b {
	case '(':
		return l.token(LParen, start), nil
	case ')':
		return l.token(RParen, start), nil
	case '[':
		return l.token(LBracket, start), nil
	case ']':
		return l.token(RBracket, start), nil
	case '{':
		return l.token(LBrace, start), nil
	case '}':
		return l.token(RBrace, start), nil
	case ',':
		return l.token(Comma, start), nil
	case ':':
		return l.token(Colon, start), nil
	case '.':
		return l.token(Dot, start), nil
	case '+':
		return l.token(Plus, start), nil
	case '-':
		return l.token(Minus, start), nil
	case '*':
		return l.token(Star, start), nil
	case '/':
		return l.token(Slash, start), nil
	case '%':
		return l.token(Percent, start), nil
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.token(Eq, start), nil
		}
		return l.token(Assign, start), nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.token(Ne, start), nil
		}
		return Token{}, l.errf(start, "unexpected character '!'")
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.token(Le, start), nil
		}
		return l.token(Lt, start), nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.token(Ge, start), nil
		}
		return l.token(Gt, start), nil
	case '"':
		return l.scanString(start)
	}

	if isDigit(b) {
		return l.scanNumber(start), nil
	}
	if isAlpha(b) {
		return l.scanIdent(start), nil
	}
	return Token{}, l.errf(start, "unexpected character %q", string(b))
}

// scanString scans past the closing quote. Escapes are validated here
// and decoded by the parser.
func (l *Lexer) scanString(start Pos) (Token, error) {
	for !l.atEnd() {
		b := l.advance()
		switch b {
		case '"':
			return l.token(Str, start), nil
		case '\\':
			if l.atEnd() {
				break
			}
			switch l.advance() {
			case '"', '\\', 'n', 't', 'r':
			default:
				return Token{}, l.errf(start, "invalid escape in string literal")
			}
		case '\n':
			return Token{}, l.errf(start, "unterminated string literal")
		}
	}
	return Token{}, l.errf(start, "unterminated string literal")
}

func (l *Lexer) scanNumber(start Pos) Token {
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	// A fractional part needs a digit after the dot, so that `1.foo`
	// stays an integer followed by a field access.
	isFloat := false
	if !l.atEnd() && l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	if !l.atEnd() && (l.peek() == 'e' || l.peek() == 'E') {
		next := l.peekNext()
		if isDigit(next) || ((next == '+' || next == '-') && l.cur+2 < len(l.src) && isDigit(l.src[l.cur+2])) {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for !l.atEnd() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	if isFloat {
		return l.token(Float, start)
	}
	return l.token(Int, start)
}

func (l *Lexer) scanIdent(start Pos) Token {
	for !l.atEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	tok := l.token(Ident, start)
	if kw, ok := keywords[tok.Lexeme]; ok {
		tok.Type = kw
	}
	return tok
}
