package runtime

import (
	"testing"

	"github.com/kavolang/kavo/compiler/types"
)

func TestMarshalMatches(t *testing.T) {
	tb := types.NewArena()

	intKind := types.NewScalar(tb, types.Int).Kind()
	floatKind := types.NewScalar(tb, types.Float).Kind()
	arrIntKind := types.NewArray(tb, types.NewScalar(tb, types.Int)).Kind()

	testCases := []struct {
		name string
		got  bool
		exp  bool
	}{
		{"IntOnInt", IntMarshal[Word]{}.Matches(intKind), true},
		{"IntOnFloat", IntMarshal[Word]{}.Matches(floatKind), false},
		{"IntOnArray", IntMarshal[Word]{}.Matches(arrIntKind), false},
		{"FloatOnFloat", FloatMarshal[Word]{}.Matches(floatKind), true},
		{"ArrayIntOnArrayInt", ArrayMarshal[int64, Word]{Elem: IntMarshal[Word]{}}.Matches(arrIntKind), true},
		{"ArrayFloatOnArrayInt", ArrayMarshal[float64, Word]{Elem: FloatMarshal[Word]{}}.Matches(arrIntKind), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, tc.got)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	b := NewArena(types.NewArena())

	im := IntMarshal[Word]{}
	if got := im.Unmarshal(b, im.Marshal(b, -7)); got != -7 {
		t.Errorf("Expected -7, got %d instead", got)
	}

	sm := StrMarshal[Word]{}
	if got := sm.Unmarshal(b, sm.Marshal(b, "kavo")); got != "kavo" {
		t.Errorf("Expected kavo, got %q instead", got)
	}

	am := ArrayMarshal[int64, Word]{Elem: IntMarshal[Word]{}}
	got := am.Unmarshal(b, am.Marshal(b, []int64{1, 2, 3}))
	exp := []int64{1, 2, 3}
	if len(got) != len(exp) {
		t.Fatalf("Expected %v, got %v instead", exp, got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("Expected %v, got %v instead", exp, got)
			break
		}
	}
}

func TestNumericMarshalInstantiations(t *testing.T) {
	tb := types.NewArena()
	b := NewArena(tb)

	ni := NumericMarshal[int64, Word]{}
	if !ni.Matches(types.NewScalar(tb, types.Int).Kind()) {
		t.Errorf("Expected the int64 instantiation to match Int")
	}
	if ni.Matches(types.NewScalar(tb, types.Float).Kind()) {
		t.Errorf("Expected the int64 instantiation to reject Float")
	}
	if got := ni.Unmarshal(b, ni.Marshal(b, 9)); got != 9 {
		t.Errorf("Expected 9, got %d instead", got)
	}

	nf := NumericMarshal[float64, Word]{}
	if !nf.Matches(types.NewScalar(tb, types.Float).Kind()) {
		t.Errorf("Expected the float64 instantiation to match Float")
	}
	if got := nf.Unmarshal(b, nf.Marshal(b, 1.25)); got != 1.25 {
		t.Errorf("Expected 1.25, got %v instead", got)
	}
	if !tb.TyEqual(nf.Ty(tb), types.NewScalar(tb, types.Float)) {
		t.Errorf("Expected Float, got %s instead", nf.Ty(tb))
	}
}

func TestTypedArray(t *testing.T) {
	b := NewArena(types.NewArena())
	im := IntMarshal[Word]{}

	arr := NewTypedArray[int64, Word](b, im, []int64{4, 5, 6})
	if arr.Len() != 3 {
		t.Fatalf("Expected length 3, got %d instead", arr.Len())
	}
	if got, ok := arr.At(1); !ok || got != 5 {
		t.Errorf("Expected 5, got %d (ok=%v) instead", got, ok)
	}
	if _, ok := arr.At(3); ok {
		t.Errorf("Expected out-of-range access to fail")
	}

	v := arr.Value()
	back, ok := TypedArrayOf[int64, Word](im, v)
	if !ok {
		t.Fatalf("Expected TypedArrayOf to accept an Array[Int] value")
	}
	exp := []int64{4, 5, 6}
	got := back.Elems()
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("Expected %v, got %v instead", exp, got)
			break
		}
	}

	if _, ok := TypedArrayOf[int64, Word](im, NewInt(b, 1)); ok {
		t.Errorf("Expected TypedArrayOf to reject a scalar")
	}
	fm := FloatMarshal[Word]{}
	if _, ok := TypedArrayOf[float64, Word](fm, v); ok {
		t.Errorf("Expected TypedArrayOf to reject a mismatched element type")
	}
}
