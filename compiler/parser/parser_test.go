package parser

import (
	"strings"
	"testing"

	"github.com/kavolang/kavo/compiler/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := Parse(src)
	if err != nil {
		t.Fatalf("Expected no error for %q, got %v instead", src, err)
	}
	return expr
}

func TestParseLiterals(t *testing.T) {
	if lit := mustParse(t, "42").(*ast.IntLit); lit.Value != 42 {
		t.Errorf("Expected 42, got %d instead", lit.Value)
	}
	if lit := mustParse(t, "3.5").(*ast.FloatLit); lit.Value != 3.5 {
		t.Errorf("Expected 3.5, got %v instead", lit.Value)
	}
	if lit := mustParse(t, "true").(*ast.BoolLit); !lit.Value {
		t.Errorf("Expected true, got %v instead", lit.Value)
	}
	if lit := mustParse(t, `"a\nb"`).(*ast.StrLit); lit.Value != "a\nb" {
		t.Errorf("Expected escaped newline, got %q instead", lit.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	expr := mustParse(t, "1 + 2 * 3").(*ast.Binary)
	if expr.Op != ast.Add {
		t.Fatalf("Expected + at the root, got %s instead", expr.Op)
	}
	right, ok := expr.Right.(*ast.Binary)
	if !ok || right.Op != ast.Mul {
		t.Fatalf("Expected * on the right, got %T instead", expr.Right)
	}

	// not a == b parses as not (a == b).
	neg := mustParse(t, "not a == b").(*ast.Unary)
	if neg.Op != ast.Not {
		t.Fatalf("Expected not at the root, got %s instead", neg.Op)
	}
	if cmp, ok := neg.Operand.(*ast.Binary); !ok || cmp.Op != ast.Eq {
		t.Errorf("Expected == under not, got %T instead", neg.Operand)
	}

	// a or b and c parses as a or (b and c).
	or := mustParse(t, "a or b and c").(*ast.Binary)
	if or.Op != ast.Or {
		t.Fatalf("Expected or at the root, got %s instead", or.Op)
	}
	if and, ok := or.Right.(*ast.Binary); !ok || and.Op != ast.And {
		t.Errorf("Expected and on the right, got %T instead", or.Right)
	}

	// -x * y parses as (-x) * y.
	mul := mustParse(t, "-x * y").(*ast.Binary)
	if mul.Op != ast.Mul {
		t.Fatalf("Expected * at the root, got %s instead", mul.Op)
	}
	if _, ok := mul.Left.(*ast.Unary); !ok {
		t.Errorf("Expected unary minus on the left, got %T instead", mul.Left)
	}
}

func TestParseAssociativity(t *testing.T) {
	// 10 - 3 - 2 parses as (10 - 3) - 2.
	expr := mustParse(t, "10 - 3 - 2").(*ast.Binary)
	if expr.Op != ast.Sub {
		t.Fatalf("Expected - at the root, got %s instead", expr.Op)
	}
	if left, ok := expr.Left.(*ast.Binary); !ok || left.Op != ast.Sub {
		t.Errorf("Expected - on the left, got %T instead", expr.Left)
	}
}

func TestParsePostfixChain(t *testing.T) {
	expr := mustParse(t, "f(xs)[0].name")
	field, ok := expr.(*ast.Field)
	if !ok || field.Name != "name" {
		t.Fatalf("Expected a field access at the root, got %T instead", expr)
	}
	idx, ok := field.Target.(*ast.Index)
	if !ok {
		t.Fatalf("Expected an index under the field, got %T instead", field.Target)
	}
	call, ok := idx.Target.(*ast.Call)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("Expected a one-argument call, got %T instead", idx.Target)
	}
}

func TestParseCompound(t *testing.T) {
	arr := mustParse(t, "[1, 2, 3,]").(*ast.ArrayLit)
	if len(arr.Elems) != 3 {
		t.Errorf("Expected 3 elements, got %d instead", len(arr.Elems))
	}

	empty := mustParse(t, "[]").(*ast.ArrayLit)
	if len(empty.Elems) != 0 {
		t.Errorf("Expected 0 elements, got %d instead", len(empty.Elems))
	}

	rec := mustParse(t, "{x: 1, y: 2.5}").(*ast.RecordLit)
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Errorf("Expected fields x and y, got %v instead", rec.Fields)
	}

	cond := mustParse(t, "if a then 1 else 2").(*ast.If)
	if _, ok := cond.Cond.(*ast.Var); !ok {
		t.Errorf("Expected a variable condition, got %T instead", cond.Cond)
	}
}

func TestParseWhere(t *testing.T) {
	expr := mustParse(t, "x + y where { x = 1, y = x + 1 }").(*ast.Where)
	if len(expr.Bindings) != 2 {
		t.Fatalf("Expected 2 bindings, got %d instead", len(expr.Bindings))
	}
	if expr.Bindings[0].Name != "x" || expr.Bindings[1].Name != "y" {
		t.Errorf("Expected bindings x and y, got %v instead", expr.Bindings)
	}
	if _, ok := expr.Body.(*ast.Binary); !ok {
		t.Errorf("Expected a binary body, got %T instead", expr.Body)
	}
}

func TestParseErrors(t *testing.T) {
	data := []string{
		"1 +",
		"(1",
		"[1, 2",
		"{x 1}",
		"if a then b",
		"a < b < c",
		"1 2",
		"",
	}

	for _, src := range data {
		if _, err := Parse(src); err == nil {
			t.Errorf("Expected an error for %q", src)
		}
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	if _, err := Parse(deep); err == nil {
		t.Fatalf("Expected a depth error")
	}

	shallow := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	if _, err := Parse(shallow); err != nil {
		t.Errorf("Expected no error, got %v instead", err)
	}

	if _, err := ParseWithDepth("((1))", 1); err == nil {
		t.Errorf("Expected a depth error with a tight limit")
	}
}

func TestParseSpans(t *testing.T) {
	expr := mustParse(t, "foo + 1")
	sp := expr.Span()
	if sp.Start.Offset != 0 || sp.End.Offset != 7 {
		t.Errorf("Expected span 0..7, got %d..%d instead", sp.Start.Offset, sp.End.Offset)
	}
}
