package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// Builder is the allocation capability for values, generic over the
// handle representation H. A builder owns all storage behind the
// handles it returns and pairs with exactly one type builder, reachable
// through Types.
//
// The raw accessors are unchecked: callers must already have
// established the value's type, normally through a Value's comma-ok
// accessors or a Marshaler's Matches. Reading a handle as the wrong
// variant is a contract violation.
type Builder[H any] interface {
	Types() types.Builder

	AllocInt(v int64) H
	AllocBool(v bool) H
	AllocFloat(v float64) H
	AllocStr(s string) H
	AllocArray(elems []H) H
	AllocFunc(fn *Function[H]) H

	Int(h H) int64
	Bool(h H) bool
	Float(h H) float64
	Str(h H) string
	ArrayLen(h H) int
	ArrayAt(h H, i int) H
	Func(h H) *Function[H]
}

// Function is a host function exposed to evaluated programs. Ty is
// always a function type; Impl receives its arguments already wrapped
// with the corresponding parameter types and must return a value of the
// declared result type.
type Function[H any] struct {
	Name string
	Ty   types.Ty
	Impl func(b Builder[H], args []Value[H]) (Value[H], error)
}
