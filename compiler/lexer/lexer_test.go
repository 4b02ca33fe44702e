package lexer

import "testing"

func kinds(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanKinds(t *testing.T) {
	data := []string{
		"1 + 2 * 3",
		"xs[0].name",
		`if ok then "yes" else "no"`,
		"a == b and not (c != d)",
		"x where { x = 1 }",
		"3.14 2e10 1.5e-3",
	}

	testCases := []struct {
		name string
		exp  []TokenType
	}{
		{"Arithmetic", []TokenType{Int, Plus, Int, Star, Int, EOF}},
		{"Postfix", []TokenType{Ident, LBracket, Int, RBracket, Dot, Ident, EOF}},
		{"If", []TokenType{KwIf, Ident, KwThen, Str, KwElse, Str, EOF}},
		{"Logic", []TokenType{Ident, Eq, Ident, KwAnd, KwNot, LParen, Ident, Ne, Ident, RParen, EOF}},
		{"Where", []TokenType{Ident, KwWhere, LBrace, Ident, Assign, Int, RBrace, EOF}},
		{"Floats", []TokenType{Float, Float, Float, EOF}},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Scan(data[ind])
			if err != nil {
				t.Fatalf("Expected no error, got %v instead", err)
			}
			got := kinds(toks)
			if len(got) != len(tc.exp) {
				t.Fatalf("Expected %v, got %v instead", tc.exp, got)
			}
			for i := range tc.exp {
				if got[i] != tc.exp[i] {
					t.Errorf("Expected %v, got %v instead", tc.exp, got)
					break
				}
			}
		})
	}
}

func TestScanPositions(t *testing.T) {
	toks, err := Scan("a +\n  bb")
	if err != nil {
		t.Fatalf("Expected no error, got %v instead", err)
	}
	last := toks[2]
	if last.Lexeme != "bb" {
		t.Fatalf("Expected bb, got %q instead", last.Lexeme)
	}
	if last.Span.Start.Line != 2 || last.Span.Start.Col != 3 {
		t.Errorf("Expected 2:3, got %s instead", last.Span.Start)
	}
}

func TestScanComments(t *testing.T) {
	toks, err := Scan("1 # the rest is ignored\n+ 2")
	if err != nil {
		t.Fatalf("Expected no error, got %v instead", err)
	}
	exp := []TokenType{Int, Plus, Int, EOF}
	got := kinds(toks)
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("Expected %v, got %v instead", exp, got)
		}
	}
}

func TestScanIntDotIsFieldAccess(t *testing.T) {
	toks, err := Scan("1.foo")
	if err != nil {
		t.Fatalf("Expected no error, got %v instead", err)
	}
	exp := []TokenType{Int, Dot, Ident, EOF}
	got := kinds(toks)
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("Expected %v, got %v instead", exp, got)
		}
	}
}

func TestScanErrors(t *testing.T) {
	data := []string{
		`"unterminated`,
		`"bad \q escape"`,
		"a ! b",
		"§",
	}

	for _, src := range data {
		if _, err := Scan(src); err == nil {
			t.Errorf("Expected an error for %q", src)
		}
	}
}
