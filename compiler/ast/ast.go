// Package ast defines the surface syntax tree produced by the parser
// and consumed by the analyzer. Nodes carry source spans for
// diagnostics and nothing else; types are attached by the analyzer in
// its own structures.
package ast

import (
	"github.com/kavolang/kavo/compiler/lexer"
)

// Expr is the sealed interface over all expression nodes.
type Expr interface {
	Span() lexer.Span
	isExpr()
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "not"
	default:
		return "?"
	}
}

// BinOp is an infix operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
)

var binOpNames = [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "and", "or"}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// Comparison reports whether the operator is one of the six
// comparisons.
func (op BinOp) Comparison() bool {
	return op >= Eq && op <= Ge
}

// Logical reports whether the operator is `and` or `or`.
func (op BinOp) Logical() bool {
	return op == And || op == Or
}

type IntLit struct {
	Value int64
	Sp    lexer.Span
}

type FloatLit struct {
	Value float64
	Sp    lexer.Span
}

type BoolLit struct {
	Value bool
	Sp    lexer.Span
}

type StrLit struct {
	Value string
	Sp    lexer.Span
}

type ArrayLit struct {
	Elems []Expr
	Sp    lexer.Span
}

// RecordField is a single `name: value` entry of a record literal.
type RecordField struct {
	Name  string
	Value Expr
	Sp    lexer.Span
}

type RecordLit struct {
	Fields []RecordField
	Sp     lexer.Span
}

type Var struct {
	Name string
	Sp   lexer.Span
}

type Unary struct {
	Op      UnaryOp
	Operand Expr
	Sp      lexer.Span
}

type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
	Sp    lexer.Span
}

type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Sp   lexer.Span
}

type Call struct {
	Fn   Expr
	Args []Expr
	Sp   lexer.Span
}

type Index struct {
	Target Expr
	Idx    Expr
	Sp     lexer.Span
}

type Field struct {
	Target Expr
	Name   string
	Sp     lexer.Span
}

// Binding is one `name = expr` entry of a where block.
type Binding struct {
	Name  string
	Value Expr
	Sp    lexer.Span
}

// Where is `body where { bindings }`. Later bindings may reference
// earlier ones.
type Where struct {
	Body     Expr
	Bindings []Binding
	Sp       lexer.Span
}

func (e *IntLit) Span() lexer.Span    { return e.Sp }
func (e *FloatLit) Span() lexer.Span  { return e.Sp }
func (e *BoolLit) Span() lexer.Span   { return e.Sp }
func (e *StrLit) Span() lexer.Span    { return e.Sp }
func (e *ArrayLit) Span() lexer.Span  { return e.Sp }
func (e *RecordLit) Span() lexer.Span { return e.Sp }
func (e *Var) Span() lexer.Span       { return e.Sp }
func (e *Unary) Span() lexer.Span     { return e.Sp }
func (e *Binary) Span() lexer.Span    { return e.Sp }
func (e *If) Span() lexer.Span        { return e.Sp }
func (e *Call) Span() lexer.Span      { return e.Sp }
func (e *Index) Span() lexer.Span     { return e.Sp }
func (e *Field) Span() lexer.Span     { return e.Sp }
func (e *Where) Span() lexer.Span     { return e.Sp }

func (*IntLit) isExpr()    {}
func (*FloatLit) isExpr()  {}
func (*BoolLit) isExpr()   {}
func (*StrLit) isExpr()    {}
func (*ArrayLit) isExpr()  {}
func (*RecordLit) isExpr() {}
func (*Var) isExpr()       {}
func (*Unary) isExpr()     {}
func (*Binary) isExpr()    {}
func (*If) isExpr()        {}
func (*Call) isExpr()      {}
func (*Index) isExpr()     {}
func (*Field) isExpr()     {}
func (*Where) isExpr()     {}
