package runtime

import (
	"testing"

	"github.com/kavolang/kavo/compiler/types"
)

func TestScalarAccessors(t *testing.T) {
	b := NewArena(types.NewArena())

	if got, ok := NewInt(b, 42).AsInt(); !ok || got != 42 {
		t.Errorf("Expected 42, got %d (ok=%v) instead", got, ok)
	}
	if got, ok := NewBool(b, true).AsBool(); !ok || !got {
		t.Errorf("Expected true, got %v (ok=%v) instead", got, ok)
	}
	if got, ok := NewFloat(b, 2.5).AsFloat(); !ok || got != 2.5 {
		t.Errorf("Expected 2.5, got %v (ok=%v) instead", got, ok)
	}
	if got, ok := NewStr(b, "hi").AsStr(); !ok || got != "hi" {
		t.Errorf("Expected hi, got %q (ok=%v) instead", got, ok)
	}
}

func TestAccessorMismatch(t *testing.T) {
	b := NewArena(types.NewArena())
	v := NewInt(b, 1)

	if _, ok := v.AsBool(); ok {
		t.Errorf("Expected AsBool to fail on an Int")
	}
	if _, ok := v.AsFloat(); ok {
		t.Errorf("Expected AsFloat to fail on an Int")
	}
	if _, ok := v.AsStr(); ok {
		t.Errorf("Expected AsStr to fail on an Int")
	}
	if _, ok := v.AsArray(); ok {
		t.Errorf("Expected AsArray to fail on an Int")
	}
	if _, ok := v.AsFunc(); ok {
		t.Errorf("Expected AsFunc to fail on an Int")
	}
}

func TestArrayValueRoundTrip(t *testing.T) {
	b := NewArena(types.NewArena())
	intTy := types.NewScalar(b.Types(), types.Int)

	arr := NewArrayValue(b, intTy, []Value[Word]{
		NewInt(b, 10), NewInt(b, 20), NewInt(b, 30),
	})

	view, ok := arr.AsArray()
	if !ok {
		t.Fatalf("Expected an array value")
	}
	if view.Len() != 3 {
		t.Fatalf("Expected length 3, got %d instead", view.Len())
	}
	if !b.Types().TyEqual(view.ElemTy(), intTy) {
		t.Errorf("Expected element type Int, got %s instead", view.ElemTy())
	}
	exp := []int64{10, 20, 30}
	for i, want := range exp {
		elem, ok := view.At(i)
		if !ok {
			t.Fatalf("Expected element at %d", i)
		}
		if got, _ := elem.AsInt(); got != want {
			t.Errorf("Expected %d, got %d instead", want, got)
		}
	}
	if _, ok := view.At(3); ok {
		t.Errorf("Expected out-of-range access to fail")
	}
	if _, ok := view.At(-1); ok {
		t.Errorf("Expected negative access to fail")
	}
}

func TestArrayValueElementMismatchPanics(t *testing.T) {
	b := NewArena(types.NewArena())
	intTy := types.NewScalar(b.Types(), types.Int)

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on mismatched element type")
		}
	}()
	NewArrayValue(b, intTy, []Value[Word]{NewBool(b, true)})
}

func TestFuncValue(t *testing.T) {
	b := NewArena(types.NewArena())
	tb := b.Types()

	fn := &Function[Word]{
		Name: "neg",
		Ty: types.NewFunc(tb,
			[]types.Ty{types.NewScalar(tb, types.Int)},
			types.NewScalar(tb, types.Int)),
		Impl: func(b Builder[Word], args []Value[Word]) (Value[Word], error) {
			n, _ := args[0].AsInt()
			return NewInt(b, -n), nil
		},
	}

	v := NewFuncValue(b, fn)
	got, ok := v.AsFunc()
	if !ok || got != fn {
		t.Fatalf("Expected the registered function back")
	}
	res, err := got.Impl(b, []Value[Word]{NewInt(b, 5)})
	if err != nil {
		t.Fatalf("Expected no error, got %v instead", err)
	}
	if n, _ := res.AsInt(); n != -5 {
		t.Errorf("Expected -5, got %d instead", n)
	}
}

func TestRecordValue(t *testing.T) {
	b := NewArena(types.NewArena())
	tb := b.Types()
	recTy := types.NewRecord(tb, []types.Field{
		{Name: "x", Type: types.NewScalar(tb, types.Int)},
		{Name: "name", Type: types.NewScalar(tb, types.Str)},
	})

	// Canonical order is sorted by name: name before x.
	rec := NewRecordValue(b, recTy, []Value[Word]{NewStr(b, "kavo"), NewInt(b, 3)})

	view, ok := rec.AsRecord()
	if !ok {
		t.Fatalf("Expected a record value")
	}
	if view.Len() != 2 {
		t.Fatalf("Expected 2 fields, got %d instead", view.Len())
	}
	name, ok := view.Field("name")
	if !ok {
		t.Fatalf("Expected field name")
	}
	if got, _ := name.AsStr(); got != "kavo" {
		t.Errorf("Expected kavo, got %q instead", got)
	}
	x, _ := view.Field("x")
	if got, _ := x.AsInt(); got != 3 {
		t.Errorf("Expected 3, got %d instead", got)
	}
	if _, ok := view.Field("missing"); ok {
		t.Errorf("Expected lookup of a missing field to fail")
	}
}

func TestValuesOnHeapBuilder(t *testing.T) {
	b := NewHeap(types.NewHeap())
	intTy := types.NewScalar(b.Types(), types.Int)

	arr := NewArrayValue(b, intTy, []Value[*HeapVal]{NewInt(b, 1), NewInt(b, 2)})
	view, _ := arr.AsArray()
	if view.Len() != 2 {
		t.Fatalf("Expected length 2, got %d instead", view.Len())
	}
	second, _ := view.At(1)
	if got, _ := second.AsInt(); got != 2 {
		t.Errorf("Expected 2, got %d instead", got)
	}
}
