package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// HeapVal is the boxed representation used by the Heap builder. Exactly
// one payload field is meaningful, matching the value's type; scalars
// reuse the same word encoding the arena uses.
type HeapVal struct {
	word Word
	str  string
	arr  []*HeapVal
	fn   *Function[*HeapVal]
}

// Heap allocates every value as its own collector-managed box. It
// trades the arena's density for independent lifetimes: a heap value
// stays alive as long as something references it, with no arena to keep
// around.
type Heap struct {
	tb types.Builder
}

// NewHeap creates a heap value builder backed by tb.
func NewHeap(tb types.Builder) *Heap {
	return &Heap{tb: tb}
}

func (hp *Heap) Types() types.Builder {
	return hp.tb
}

func (hp *Heap) AllocInt(v int64) *HeapVal {
	return &HeapVal{word: WordFromInt(v)}
}

func (hp *Heap) AllocBool(v bool) *HeapVal {
	return &HeapVal{word: WordFromBool(v)}
}

func (hp *Heap) AllocFloat(v float64) *HeapVal {
	return &HeapVal{word: WordFromFloat(v)}
}

func (hp *Heap) AllocStr(s string) *HeapVal {
	return &HeapVal{str: s}
}

func (hp *Heap) AllocArray(elems []*HeapVal) *HeapVal {
	owned := make([]*HeapVal, len(elems))
	copy(owned, elems)
	return &HeapVal{arr: owned}
}

func (hp *Heap) AllocFunc(fn *Function[*HeapVal]) *HeapVal {
	return &HeapVal{fn: fn}
}

func (hp *Heap) Int(h *HeapVal) int64 {
	return h.word.Int()
}

func (hp *Heap) Bool(h *HeapVal) bool {
	return h.word.Bool()
}

func (hp *Heap) Float(h *HeapVal) float64 {
	return h.word.Float()
}

func (hp *Heap) Str(h *HeapVal) string {
	return h.str
}

func (hp *Heap) ArrayLen(h *HeapVal) int {
	return len(h.arr)
}

func (hp *Heap) ArrayAt(h *HeapVal, i int) *HeapVal {
	return h.arr[i]
}

func (hp *Heap) Func(h *HeapVal) *Function[*HeapVal] {
	return h.fn
}
