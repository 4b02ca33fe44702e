package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// ArrayView is a window over a raw array run. Elements come back
// wrapped with the array's element type.
type ArrayView[H any] struct {
	elem types.Ty
	b    Builder[H]
	h    H
}

func (a ArrayView[H]) Len() int {
	return a.b.ArrayLen(a.h)
}

func (a ArrayView[H]) ElemTy() types.Ty {
	return a.elem
}

// At returns the i'th element. Out-of-range indexes report false.
func (a ArrayView[H]) At(i int) (Value[H], bool) {
	if i < 0 || i >= a.b.ArrayLen(a.h) {
		return Value[H]{}, false
	}
	return Wrap(a.b, a.elem, a.b.ArrayAt(a.h, i)), true
}

// RecordView is a window over a record value, which shares the flat
// array encoding with one slot per canonically ordered field.
type RecordView[H any] struct {
	fields []types.Field
	b      Builder[H]
	h      H
}

func (r RecordView[H]) Len() int {
	return len(r.fields)
}

// Field returns the named field's value. Unknown names report false.
func (r RecordView[H]) Field(name string) (Value[H], bool) {
	for i, f := range r.fields {
		if string(f.Name) == name {
			return Wrap(r.b, f.Type, r.b.ArrayAt(r.h, i)), true
		}
	}
	return Value[H]{}, false
}

// At returns the i'th field in canonical order.
func (r RecordView[H]) At(i int) (types.Field, Value[H], bool) {
	if i < 0 || i >= len(r.fields) {
		return types.Field{}, Value[H]{}, false
	}
	return r.fields[i], Wrap(r.b, r.fields[i].Type, r.b.ArrayAt(r.h, i)), true
}

// TypedArray gives element-typed access to an array value through a
// marshaler, converting one element at a time instead of copying the
// whole array out.
type TypedArray[E any, H any] struct {
	b Builder[H]
	m Marshaler[E, H]
	h H
}

// NewTypedArray builds an array value from Go elements.
func NewTypedArray[E any, H any](b Builder[H], m Marshaler[E, H], elems []E) TypedArray[E, H] {
	handles := make([]H, len(elems))
	for i, e := range elems {
		handles[i] = m.Marshal(b, e)
	}
	return TypedArray[E, H]{b: b, m: m, h: b.AllocArray(handles)}
}

// TypedArrayOf views v as an array of E. Reports false when v is not an
// array of the marshaler's element type.
func TypedArrayOf[E any, H any](m Marshaler[E, H], v Value[H]) (TypedArray[E, H], bool) {
	arr, ok := v.Ty().Kind().(types.TArray)
	if !ok || !m.Matches(arr.Elem.Kind()) {
		return TypedArray[E, H]{}, false
	}
	return TypedArray[E, H]{b: v.Builder(), m: m, h: v.Handle()}, true
}

func (a TypedArray[E, H]) Len() int {
	return a.b.ArrayLen(a.h)
}

// At returns the i'th element. Out-of-range indexes report false.
func (a TypedArray[E, H]) At(i int) (E, bool) {
	if i < 0 || i >= a.b.ArrayLen(a.h) {
		var zero E
		return zero, false
	}
	return a.m.Unmarshal(a.b, a.b.ArrayAt(a.h, i)), true
}

// Elems copies every element out into a fresh slice.
func (a TypedArray[E, H]) Elems() []E {
	n := a.b.ArrayLen(a.h)
	out := make([]E, n)
	for i := 0; i < n; i++ {
		out[i] = a.m.Unmarshal(a.b, a.b.ArrayAt(a.h, i))
	}
	return out
}

// Value rewraps the typed array as a plain value.
func (a TypedArray[E, H]) Value() Value[H] {
	return Wrap(a.b, types.NewArray(a.b.Types(), a.m.Ty(a.b.Types())), a.h)
}
