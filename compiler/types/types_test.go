package types

import "testing"

func TestScalarOrdering(t *testing.T) {
	ordered := []Scalar{Bool, Int, Float, Str, Bytes}
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if !(ordered[i] < ordered[j]) {
				t.Errorf("Expected %s < %s", ordered[i], ordered[j])
			}
		}
	}
}

func TestFlagPropagation(t *testing.T) {
	b := NewArena()

	data := []Ty{
		NewArray(b, NewVar(b, 0)),
		NewArray(b, NewScalar(b, Int)),
		NewMap(b, NewScalar(b, Int), NewVar(b, 1)),
		NewMap(b, NewVar(b, 2), NewScalar(b, Str)),
		NewRecord(b, []Field{{Name: "x", Type: NewScalar(b, Int)}}),
		NewRecord(b, []Field{{Name: "x", Type: NewVar(b, 3)}}),
		NewFunc(b, []Ty{NewScalar(b, Int)}, NewVar(b, 4)),
		NewSymbol(b, []string{"ok", "error"}),
		NewScalar(b, Bool),
	}

	testCases := []struct {
		name string
		exp  bool
	}{
		{"ArrayOfVar", true},
		{"ArrayOfInt", false},
		{"MapVarValue", true},
		{"MapVarKey", true},
		{"RecordConcrete", false},
		{"RecordVar", true},
		{"FuncVarRet", true},
		{"Symbol", false},
		{"ScalarBool", false},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := data[ind].Flags()&HasTypeVars != 0
			if got != tc.exp {
				t.Errorf("Expected HasTypeVars=%v, got %v instead", tc.exp, got)
			}
		})
	}
}

func TestArenaInterning(t *testing.T) {
	b := NewArena()

	build := func() Ty {
		return NewMap(b,
			NewArray(b, NewScalar(b, Int)),
			NewRecord(b, []Field{
				{Name: "x", Type: NewScalar(b, Float)},
				{Name: "y", Type: NewScalar(b, Str)},
			}))
	}

	first := build()
	second := build()
	if first != second {
		t.Errorf("Expected handle-identical types from one arena, got distinct handles")
	}
	if !b.TyEqual(first, second) {
		t.Errorf("Expected TyEqual to hold for interned duplicates")
	}
}

func TestHeapNoInterning(t *testing.T) {
	b := NewHeap()

	first := NewArray(b, NewScalar(b, Int))
	second := NewArray(b, NewScalar(b, Int))
	if first == second {
		t.Errorf("Expected distinct handles from the heap builder")
	}
	if !b.TyEqual(first, second) {
		t.Errorf("Expected structural equality for identical heap types")
	}
	if b.TyHash(first) != b.TyHash(second) {
		t.Errorf("Expected equal hashes for structurally equal types")
	}
}

func TestBuildersAgreeOnStructure(t *testing.T) {
	arena := NewArena()
	heap := NewHeap()

	fromArena := NewFunc(arena,
		[]Ty{NewScalar(arena, Int), NewArray(arena, NewScalar(arena, Bool))},
		NewScalar(arena, Float))
	fromHeap := NewFunc(heap,
		[]Ty{NewScalar(heap, Int), NewArray(heap, NewScalar(heap, Bool))},
		NewScalar(heap, Float))

	if !deepEqual(fromArena, fromHeap) {
		t.Errorf("Expected identical construction sequences to agree across builders")
	}
	if fromArena.String() != fromHeap.String() {
		t.Errorf("Expected %s, got %s instead", fromArena, fromHeap)
	}
}

func TestRecordCanonicalization(t *testing.T) {
	b := NewArena()
	intTy := NewScalar(b, Int)
	strTy := NewScalar(b, Str)

	forward := NewRecord(b, []Field{
		{Name: "a", Type: intTy},
		{Name: "b", Type: strTy},
	})
	backward := NewRecord(b, []Field{
		{Name: "b", Type: strTy},
		{Name: "a", Type: intTy},
	})

	if forward != backward {
		t.Errorf("Expected field order not to matter for record identity")
	}
}

func TestRecordDuplicateFieldPanics(t *testing.T) {
	b := NewArena()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on duplicate record field")
		}
	}()
	NewRecord(b, []Field{
		{Name: "x", Type: NewScalar(b, Int)},
		{Name: "x", Type: NewScalar(b, Str)},
	})
}

func TestSymbolCanonicalization(t *testing.T) {
	b := NewArena()
	first := NewSymbol(b, []string{"pending", "error", "success", "error"})
	second := NewSymbol(b, []string{"success", "pending", "error"})
	if first != second {
		t.Errorf("Expected sorted, deduplicated symbols to intern to one handle")
	}
	tags := first.Kind().(TSymbol).Tags
	exp := []Ident{"error", "pending", "success"}
	if len(tags) != len(exp) {
		t.Fatalf("Expected %d tags, got %d instead", len(exp), len(tags))
	}
	for i := range exp {
		if tags[i] != exp[i] {
			t.Errorf("Expected tag %s at %d, got %s instead", exp[i], i, tags[i])
		}
	}
}

func TestPrinting(t *testing.T) {
	b := NewArena()

	data := []Ty{
		NewScalar(b, Int),
		NewArray(b, NewScalar(b, Float)),
		NewMap(b, NewScalar(b, Str), NewScalar(b, Bool)),
		NewRecord(b, []Field{
			{Name: "x", Type: NewScalar(b, Int)},
			{Name: "y", Type: NewScalar(b, Float)},
		}),
		NewFunc(b, []Ty{NewScalar(b, Int), NewScalar(b, Int)}, NewScalar(b, Bool)),
		NewSymbol(b, []string{"ok", "error"}),
		NewVar(b, 7),
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"Scalar", "Int"},
		{"Array", "Array[Float]"},
		{"Map", "Map[Str, Bool]"},
		{"Record", "{x: Int, y: Float}"},
		{"Func", "(Int, Int) -> Bool"},
		{"Symbol", `Symbol["error", "ok"]`},
		{"Var", "?7"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if data[ind].String() != tc.exp {
				t.Errorf("Expected %s, got %s instead", tc.exp, data[ind])
			}
		})
	}
}
