package analyzer

import (
	"strings"
	"testing"

	"github.com/kavolang/kavo/compiler/parser"
	"github.com/kavolang/kavo/compiler/types"
)

func analyze(t *testing.T, tb types.Builder, scope *Scope, src string) (*Info, Diagnostics) {
	t.Helper()
	expr, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Expected %q to parse, got %v instead", src, err)
	}
	return Analyze(tb, expr, scope)
}

func checkType(t *testing.T, src, exp string, bind func(tb types.Builder, s *Scope) *Scope) {
	t.Helper()
	tb := types.NewArena()
	scope := NewScope()
	if bind != nil {
		scope = bind(tb, scope)
	}
	info, diags := analyze(t, tb, scope, src)
	if diags.HasErrors() {
		t.Fatalf("Expected no errors for %q, got %v instead", src, diags)
	}
	if got := info.Ty.String(); got != exp {
		t.Errorf("Expected %s, got %s instead", exp, got)
	}
}

func TestInferLiterals(t *testing.T) {
	data := []string{
		"42",
		"3.5",
		"true",
		`"hi"`,
		"[1, 2, 3]",
		"[[1], [2]]",
		"{x: 1, y: 2.5}",
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"Int", "Int"},
		{"Float", "Float"},
		{"Bool", "Bool"},
		{"Str", "Str"},
		{"Array", "Array[Int]"},
		{"Nested", "Array[Array[Int]]"},
		{"Record", "{x: Int, y: Float}"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checkType(t, data[ind], tc.exp, nil)
		})
	}
}

func TestInferOperators(t *testing.T) {
	data := []string{
		"1 + 2",
		"1.5 * 2.0",
		"7 % 3",
		"1 < 2",
		`"a" <= "b"`,
		"1 == 2 and true",
		"not false or true",
		"-3.5",
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"IntAdd", "Int"},
		{"FloatMul", "Float"},
		{"Mod", "Int"},
		{"IntLt", "Bool"},
		{"StrOrd", "Bool"},
		{"EqAnd", "Bool"},
		{"NotOr", "Bool"},
		{"NegFloat", "Float"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checkType(t, data[ind], tc.exp, nil)
		})
	}
}

func TestInferIfAndWhere(t *testing.T) {
	checkType(t, "if true then 1 else 2", "Int", nil)
	checkType(t, "x + y where { x = 1, y = x + 1 }", "Int", nil)
	checkType(t, `(r.name where { r = {name: "kavo"} })`, "Str", nil)
	// An empty array adopts the element type forced by the other branch.
	checkType(t, "if true then [] else [1]", "Array[Int]", nil)
}

func TestInferGlobals(t *testing.T) {
	bind := func(tb types.Builder, s *Scope) *Scope {
		intTy := types.NewScalar(tb, types.Int)
		s = s.Bind("n", intTy)
		s = s.Bind("xs", types.NewArray(tb, intTy))
		s = s.Bind("inc", types.NewFunc(tb, []types.Ty{intTy}, intTy))
		return s
	}

	checkType(t, "inc(n) + xs[0]", "Int", bind)
	checkType(t, "xs[n]", "Int", bind)
}

func TestAnalyzeErrors(t *testing.T) {
	data := []string{
		"1 + true",
		"unknownName",
		`if 1 then 2 else 3`,
		`if true then 1 else "s"`,
		`[1, "two"]`,
		`"a" % "b"`,
		"1.name",
		"true[0]",
		"-\"s\"",
		"[]",
		"{x: 1, x: 2}",
		"x where { x = 1, x = 2 }",
	}

	testCases := []struct {
		name string
		frag string
	}{
		{"NumericMismatch", "type mismatch"},
		{"UnknownName", "unknown name"},
		{"NonBoolCond", "type mismatch"},
		{"BranchMismatch", "type mismatch"},
		{"HeterogeneousArray", "type mismatch"},
		{"ModStrings", "type mismatch"},
		{"FieldOnInt", "has no fields"},
		{"IndexBool", "not Indexable"},
		{"NegStr", "Numeric"},
		{"AmbiguousEmpty", "cannot infer"},
		{"DuplicateField", "duplicate record field"},
		{"DuplicateBinding", "duplicate binding"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tb := types.NewArena()
			_, diags := analyze(t, tb, NewScope(), data[ind])
			if !diags.HasErrors() {
				t.Fatalf("Expected errors for %q", data[ind])
			}
			if !strings.Contains(diags.Error(), tc.frag) {
				t.Errorf("Expected a diagnostic containing %q, got %q instead", tc.frag, diags.Error())
			}
		})
	}
}

func TestDiagnosticsAreCollected(t *testing.T) {
	tb := types.NewArena()
	_, diags := analyze(t, tb, NewScope(), "a + b")
	if len(diags) < 2 {
		t.Errorf("Expected both unknown names reported, got %v instead", diags)
	}
}

func TestCallDiagnostics(t *testing.T) {
	tb := types.NewArena()
	intTy := types.NewScalar(tb, types.Int)
	scope := NewScope().
		Bind("inc", types.NewFunc(tb, []types.Ty{intTy}, intTy)).
		Bind("n", intTy)

	_, diags := analyze(t, tb, scope, "inc(n, n)")
	if !strings.Contains(diags.Error(), "wrong number of arguments") {
		t.Errorf("Expected an arity diagnostic, got %v instead", diags)
	}

	_, diags = analyze(t, tb, scope, "inc(true)")
	if !strings.Contains(diags.Error(), "type mismatch") {
		t.Errorf("Expected an argument type diagnostic, got %v instead", diags)
	}

	_, diags = analyze(t, tb, scope, "n(1)")
	if !strings.Contains(diags.Error(), "cannot call") {
		t.Errorf("Expected a callability diagnostic, got %v instead", diags)
	}
}

func TestSubexpressionTypesRecorded(t *testing.T) {
	tb := types.NewArena()
	expr, err := parser.Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Expected no error, got %v instead", err)
	}
	info, diags := Analyze(tb, expr, NewScope())
	if diags.HasErrors() {
		t.Fatalf("Expected no errors, got %v instead", diags)
	}
	if len(info.Types) != 5 {
		t.Errorf("Expected 5 recorded types, got %d instead", len(info.Types))
	}
	for e, ty := range info.Types {
		if ty.String() != "Int" {
			t.Errorf("Expected Int for %T, got %s instead", e, ty)
		}
	}
}
