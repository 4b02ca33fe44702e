package runtime

import (
	"testing"
	"unsafe"

	"github.com/kavolang/kavo/compiler/types"
)

func TestWordIsOneMachineWord(t *testing.T) {
	if unsafe.Sizeof(Word(0)) != 8 {
		t.Errorf("Expected Word to be 8 bytes, got %d instead", unsafe.Sizeof(Word(0)))
	}
}

func TestWordRoundTrips(t *testing.T) {
	ints := []int64{0, 1, -1, 1 << 62, -(1 << 62)}
	for _, v := range ints {
		if got := WordFromInt(v).Int(); got != v {
			t.Errorf("Expected %d, got %d instead", v, got)
		}
	}

	floats := []float64{0, 1.5, -2.25, 1e300}
	for _, v := range floats {
		if got := WordFromFloat(v).Float(); got != v {
			t.Errorf("Expected %v, got %v instead", v, got)
		}
	}

	if !WordFromBool(true).Bool() || WordFromBool(false).Bool() {
		t.Errorf("Expected booleans to survive the word encoding")
	}
}

func TestArenaArrayRun(t *testing.T) {
	a := NewArena(types.NewArena())

	elems := []Word{a.AllocInt(1), a.AllocInt(2), a.AllocInt(3)}
	h := a.AllocArray(elems)

	if got := a.ArrayLen(h); got != 3 {
		t.Fatalf("Expected length 3, got %d instead", got)
	}
	for i := 0; i < 3; i++ {
		if got := a.Int(a.ArrayAt(h, i)); got != int64(i+1) {
			t.Errorf("Expected %d, got %d instead", i+1, got)
		}
	}
}

func TestArenaNestedArrays(t *testing.T) {
	a := NewArena(types.NewArena())

	inner1 := a.AllocArray([]Word{a.AllocInt(1), a.AllocInt(2)})
	inner2 := a.AllocArray([]Word{a.AllocInt(3)})
	outer := a.AllocArray([]Word{inner1, inner2})

	if got := a.ArrayLen(outer); got != 2 {
		t.Fatalf("Expected length 2, got %d instead", got)
	}
	if got := a.ArrayLen(a.ArrayAt(outer, 0)); got != 2 {
		t.Errorf("Expected inner length 2, got %d instead", got)
	}
	if got := a.Int(a.ArrayAt(a.ArrayAt(outer, 1), 0)); got != 3 {
		t.Errorf("Expected 3, got %d instead", got)
	}
}

func TestArenaEmptyArray(t *testing.T) {
	a := NewArena(types.NewArena())

	h := a.AllocArray(nil)
	if got := a.ArrayLen(h); got != 0 {
		t.Errorf("Expected length 0, got %d instead", got)
	}
	// The reserved slot keeps even the first run off index zero.
	if h == 0 {
		t.Errorf("Expected a non-zero handle for the first array")
	}
}

func TestArenaSideTables(t *testing.T) {
	a := NewArena(types.NewArena())

	first := a.AllocStr("hello")
	second := a.AllocStr("world")
	if a.Str(first) != "hello" || a.Str(second) != "world" {
		t.Errorf("Expected side table strings to read back")
	}

	fn := &Function[Word]{Name: "id"}
	if got := a.Func(a.AllocFunc(fn)); got != fn {
		t.Errorf("Expected the same function pointer back")
	}
}

func TestHeapArrayIsolated(t *testing.T) {
	hp := NewHeap(types.NewArena())

	elems := []*HeapVal{hp.AllocInt(7)}
	h := hp.AllocArray(elems)
	elems[0] = hp.AllocInt(99)

	if got := hp.Int(hp.ArrayAt(h, 0)); got != 7 {
		t.Errorf("Expected 7, got %d instead", got)
	}
}
