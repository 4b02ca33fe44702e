package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// Marshaler converts between a Go representation E and raw value
// storage. It is the bridge host functions use: Ty names the engine
// type being bridged, Matches is an allocation-free check against an
// already-built kind, and Unmarshal and Marshal move payloads without
// further validation. Unmarshal must only run on handles whose type
// already passed Matches.
type Marshaler[E any, H any] interface {
	Ty(tb types.Builder) types.Ty
	Matches(kind types.Kind) bool
	Unmarshal(b Builder[H], h H) E
	Marshal(b Builder[H], v E) H
}

type IntMarshal[H any] struct{}

func (IntMarshal[H]) Ty(tb types.Builder) types.Ty {
	return types.NewScalar(tb, types.Int)
}

func (IntMarshal[H]) Matches(kind types.Kind) bool {
	sc, ok := kind.(types.TScalar)
	return ok && sc.Scalar == types.Int
}

func (IntMarshal[H]) Unmarshal(b Builder[H], h H) int64 {
	return b.Int(h)
}

func (IntMarshal[H]) Marshal(b Builder[H], v int64) H {
	return b.AllocInt(v)
}

type BoolMarshal[H any] struct{}

func (BoolMarshal[H]) Ty(tb types.Builder) types.Ty {
	return types.NewScalar(tb, types.Bool)
}

func (BoolMarshal[H]) Matches(kind types.Kind) bool {
	sc, ok := kind.(types.TScalar)
	return ok && sc.Scalar == types.Bool
}

func (BoolMarshal[H]) Unmarshal(b Builder[H], h H) bool {
	return b.Bool(h)
}

func (BoolMarshal[H]) Marshal(b Builder[H], v bool) H {
	return b.AllocBool(v)
}

type FloatMarshal[H any] struct{}

func (FloatMarshal[H]) Ty(tb types.Builder) types.Ty {
	return types.NewScalar(tb, types.Float)
}

func (FloatMarshal[H]) Matches(kind types.Kind) bool {
	sc, ok := kind.(types.TScalar)
	return ok && sc.Scalar == types.Float
}

func (FloatMarshal[H]) Unmarshal(b Builder[H], h H) float64 {
	return b.Float(h)
}

func (FloatMarshal[H]) Marshal(b Builder[H], v float64) H {
	return b.AllocFloat(v)
}

type StrMarshal[H any] struct{}

func (StrMarshal[H]) Ty(tb types.Builder) types.Ty {
	return types.NewScalar(tb, types.Str)
}

func (StrMarshal[H]) Matches(kind types.Kind) bool {
	sc, ok := kind.(types.TScalar)
	return ok && sc.Scalar == types.Str
}

func (StrMarshal[H]) Unmarshal(b Builder[H], h H) string {
	return b.Str(h)
}

func (StrMarshal[H]) Marshal(b Builder[H], v string) H {
	return b.AllocStr(v)
}

// ArrayMarshal lifts an element marshaler to []E.
type ArrayMarshal[E any, H any] struct {
	Elem Marshaler[E, H]
}

func (m ArrayMarshal[E, H]) Ty(tb types.Builder) types.Ty {
	return types.NewArray(tb, m.Elem.Ty(tb))
}

func (m ArrayMarshal[E, H]) Matches(kind types.Kind) bool {
	arr, ok := kind.(types.TArray)
	return ok && m.Elem.Matches(arr.Elem.Kind())
}

func (m ArrayMarshal[E, H]) Unmarshal(b Builder[H], h H) []E {
	n := b.ArrayLen(h)
	out := make([]E, n)
	for i := 0; i < n; i++ {
		out[i] = m.Elem.Unmarshal(b, b.ArrayAt(h, i))
	}
	return out
}

func (m ArrayMarshal[E, H]) Marshal(b Builder[H], v []E) H {
	handles := make([]H, len(v))
	for i, e := range v {
		handles[i] = m.Elem.Marshal(b, e)
	}
	return b.AllocArray(handles)
}

// Numeric constrains generic host code to the two numeric scalars. A
// single generic body written against Numeric serves both Int and Float
// with exactly these two instantiations.
type Numeric interface {
	~int64 | ~float64
}

// NumericMarshal is the Marshaler for a Numeric instantiation. It must
// be instantiated with int64 or float64 directly, not a named type.
type NumericMarshal[N Numeric, H any] struct{}

func (NumericMarshal[N, H]) isFloat() bool {
	var z N
	switch any(z).(type) {
	case int64:
		return false
	case float64:
		return true
	default:
		panic("runtime: numeric marshal instantiated with unsupported type")
	}
}

func (m NumericMarshal[N, H]) Ty(tb types.Builder) types.Ty {
	if m.isFloat() {
		return types.NewScalar(tb, types.Float)
	}
	return types.NewScalar(tb, types.Int)
}

func (m NumericMarshal[N, H]) Matches(kind types.Kind) bool {
	sc, ok := kind.(types.TScalar)
	if !ok {
		return false
	}
	if m.isFloat() {
		return sc.Scalar == types.Float
	}
	return sc.Scalar == types.Int
}

func (m NumericMarshal[N, H]) Unmarshal(b Builder[H], h H) N {
	if m.isFloat() {
		return N(b.Float(h))
	}
	return N(b.Int(h))
}

func (m NumericMarshal[N, H]) Marshal(b Builder[H], v N) H {
	if m.isFloat() {
		return b.AllocFloat(float64(v))
	}
	return b.AllocInt(int64(v))
}
