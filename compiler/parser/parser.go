// Package parser turns expression source text into an ast.Expr.
//
// The grammar, loosest to tightest: `where` blocks, `or`, `and`, `not`,
// comparisons (non-chaining), additive, multiplicative, unary minus,
// then postfix call/index/field. `if c then a else b` is keyword
// delimited and parses anywhere a primary can.
package parser

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/kavolang/kavo/compiler/ast"
	"github.com/kavolang/kavo/compiler/lexer"
)

// DefaultMaxDepth bounds expression nesting. The limit is a recoverable
// parse error, not a crash: deeply nested input is rejected before it
// can exhaust the parser's call stack.
const DefaultMaxDepth = 256

// Error is a parse error with the span it points at.
type Error struct {
	Span lexer.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

type parser struct {
	toks     []lexer.Token
	pos      int
	depth    int
	maxDepth int
}

// Parse parses src with the default nesting limit.
func Parse(src string) (ast.Expr, error) {
	return ParseWithDepth(src, DefaultMaxDepth)
}

// ParseWithDepth parses src, rejecting expressions nested deeper than
// maxDepth.
func ParseWithDepth(src string, maxDepth int) (ast.Expr, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, errors.Wrap(err, "lex")
	}
	p := &parser{toks: toks, maxDepth: maxDepth}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != lexer.EOF {
		return nil, p.errf(p.peek().Span, "unexpected %s after expression", p.peek().Type)
	}
	return expr, nil
}

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) match(t lexer.TokenType) bool {
	if p.peek().Type == t {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.peek().Type != t {
		return lexer.Token{}, p.errf(p.peek().Span, "expected %s, got %s", t, p.peek().Type)
	}
	return p.advance(), nil
}

func (p *parser) errf(span lexer.Span, format string, args ...interface{}) error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) enter(span lexer.Span) error {
	if p.depth >= p.maxDepth {
		return p.errf(span, "expression nesting exceeds the maximum of %d levels", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseExpr() (ast.Expr, error) {
	if err := p.enter(p.peek().Span); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseWhere()
}

func (p *parser) parseWhere() (ast.Expr, error) {
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.KwWhere {
		p.advance()
		if _, err := p.expect(lexer.LBrace); err != nil {
			return nil, err
		}
		var bindings []ast.Binding
		for !p.match(lexer.RBrace) {
			name, err := p.expect(lexer.Ident)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Assign); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, ast.Binding{
				Name:  name.Lexeme,
				Value: value,
				Sp:    name.Span.Join(value.Span()),
			})
			if !p.match(lexer.Comma) {
				if _, err := p.expect(lexer.RBrace); err != nil {
					return nil, err
				}
				break
			}
		}
		end := p.toks[p.pos-1].Span
		body = &ast.Where{Body: body, Bindings: bindings, Sp: body.Span().Join(end)}
	}
	return body, nil
}

func (p *parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.KwOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.Or, Left: left, Right: right, Sp: left.Span().Join(right.Span())}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.KwAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.And, Left: left, Right: right, Sp: left.Span().Join(right.Span())}
	}
	return left, nil
}

func (p *parser) parseNot() (ast.Expr, error) {
	if tok := p.peek(); tok.Type == lexer.KwNot {
		if err := p.enter(tok.Span); err != nil {
			return nil, err
		}
		defer p.leave()
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Not, Operand: operand, Sp: tok.Span.Join(operand.Span())}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.TokenType]ast.BinOp{
	lexer.Eq: ast.Eq,
	lexer.Ne: ast.Ne,
	lexer.Lt: ast.Lt,
	lexer.Le: ast.Le,
	lexer.Gt: ast.Gt,
	lexer.Ge: ast.Ge,
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOps[p.peek().Type]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, chained := comparisonOps[p.peek().Type]; chained {
		return nil, p.errf(p.peek().Span, "comparisons do not chain; parenthesize one side")
	}
	return &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Join(right.Span())}, nil
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Type {
		case lexer.Plus:
			op = ast.Add
		case lexer.Minus:
			op = ast.Sub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Join(right.Span())}
	}
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Type {
		case lexer.Star:
			op = ast.Mul
		case lexer.Slash:
			op = ast.Div
		case lexer.Percent:
			op = ast.Mod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Join(right.Span())}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if tok := p.peek(); tok.Type == lexer.Minus {
		if err := p.enter(tok.Span); err != nil {
			return nil, err
		}
		defer p.leave()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Neg, Operand: operand, Sp: tok.Span.Join(operand.Span())}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case lexer.LParen:
			p.advance()
			var args []ast.Expr
			for !p.match(lexer.RParen) {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(lexer.Comma) {
					if _, err := p.expect(lexer.RParen); err != nil {
						return nil, err
					}
					break
				}
			}
			end := p.toks[p.pos-1].Span
			expr = &ast.Call{Fn: expr, Args: args, Sp: expr.Span().Join(end)}
		case lexer.LBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(lexer.RBracket)
			if err != nil {
				return nil, err
			}
			expr = &ast.Index{Target: expr, Idx: idx, Sp: expr.Span().Join(end.Span)}
		case lexer.Dot:
			p.advance()
			name, err := p.expect(lexer.Ident)
			if err != nil {
				return nil, err
			}
			expr = &ast.Field{Target: expr, Name: name.Lexeme, Sp: expr.Span().Join(name.Span)}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.Int:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errf(tok.Span, "integer literal %s out of range", tok.Lexeme)
		}
		return &ast.IntLit{Value: v, Sp: tok.Span}, nil
	case lexer.Float:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errf(tok.Span, "invalid float literal %s", tok.Lexeme)
		}
		return &ast.FloatLit{Value: v, Sp: tok.Span}, nil
	case lexer.Str:
		p.advance()
		v, err := strconv.Unquote(tok.Lexeme)
		if err != nil {
			return nil, p.errf(tok.Span, "invalid string literal")
		}
		return &ast.StrLit{Value: v, Sp: tok.Span}, nil
	case lexer.KwTrue, lexer.KwFalse:
		p.advance()
		return &ast.BoolLit{Value: tok.Type == lexer.KwTrue, Sp: tok.Span}, nil
	case lexer.Ident:
		p.advance()
		return &ast.Var{Name: tok.Lexeme, Sp: tok.Span}, nil
	case lexer.LParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LBracket:
		return p.parseArray()
	case lexer.LBrace:
		return p.parseRecord()
	case lexer.KwIf:
		return p.parseIf()
	default:
		return nil, p.errf(tok.Span, "expected an expression, got %s", tok.Type)
	}
}

func (p *parser) parseArray() (ast.Expr, error) {
	start, _ := p.expect(lexer.LBracket)
	var elems []ast.Expr
	for !p.match(lexer.RBracket) {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.match(lexer.Comma) {
			if _, err := p.expect(lexer.RBracket); err != nil {
				return nil, err
			}
			break
		}
	}
	end := p.toks[p.pos-1].Span
	return &ast.ArrayLit{Elems: elems, Sp: start.Span.Join(end)}, nil
}

func (p *parser) parseRecord() (ast.Expr, error) {
	start, _ := p.expect(lexer.LBrace)
	var fields []ast.RecordField
	for !p.match(lexer.RBrace) {
		name, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{
			Name:  name.Lexeme,
			Value: value,
			Sp:    name.Span.Join(value.Span()),
		})
		if !p.match(lexer.Comma) {
			if _, err := p.expect(lexer.RBrace); err != nil {
				return nil, err
			}
			break
		}
	}
	end := p.toks[p.pos-1].Span
	return &ast.RecordLit{Fields: fields, Sp: start.Span.Join(end)}, nil
}

func (p *parser) parseIf() (ast.Expr, error) {
	start, _ := p.expect(lexer.KwIf)
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwThen); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwElse); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.If{
		Cond: cond,
		Then: thenExpr,
		Else: elseExpr,
		Sp:   start.Span.Join(elseExpr.Span()),
	}, nil
}
