package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// Value pairs a raw handle with its type and the builder that owns it.
// Values are cheap to copy; the payload stays in the builder.
type Value[H any] struct {
	ty types.Ty
	b  Builder[H]
	h  H
}

// Wrap attaches a type to a raw handle. The handle must have been
// allocated by b with a representation matching ty; Wrap performs no
// check.
func Wrap[H any](b Builder[H], ty types.Ty, h H) Value[H] {
	return Value[H]{ty: ty, b: b, h: h}
}

func (v Value[H]) Ty() types.Ty {
	return v.ty
}

func (v Value[H]) Handle() H {
	return v.h
}

func (v Value[H]) Builder() Builder[H] {
	return v.b
}

// NewInt builds an Int value.
func NewInt[H any](b Builder[H], v int64) Value[H] {
	return Wrap(b, types.NewScalar(b.Types(), types.Int), b.AllocInt(v))
}

// NewBool builds a Bool value.
func NewBool[H any](b Builder[H], v bool) Value[H] {
	return Wrap(b, types.NewScalar(b.Types(), types.Bool), b.AllocBool(v))
}

// NewFloat builds a Float value.
func NewFloat[H any](b Builder[H], v float64) Value[H] {
	return Wrap(b, types.NewScalar(b.Types(), types.Float), b.AllocFloat(v))
}

// NewStr builds a Str value.
func NewStr[H any](b Builder[H], s string) Value[H] {
	return Wrap(b, types.NewScalar(b.Types(), types.Str), b.AllocStr(s))
}

// NewArrayValue builds an array from already-built elements. elemTy
// must come from b's type builder and every element must have exactly
// that type; a mismatch is a contract violation.
func NewArrayValue[H any](b Builder[H], elemTy types.Ty, elems []Value[H]) Value[H] {
	handles := make([]H, len(elems))
	for i, e := range elems {
		if !b.Types().TyEqual(e.Ty(), elemTy) {
			panic("runtime: array element type mismatch")
		}
		handles[i] = e.Handle()
	}
	return Wrap(b, types.NewArray(b.Types(), elemTy), b.AllocArray(handles))
}

// NewFuncValue builds a function value from a host function.
func NewFuncValue[H any](b Builder[H], fn *Function[H]) Value[H] {
	return Wrap(b, fn.Ty, b.AllocFunc(fn))
}

func (v Value[H]) scalar(s types.Scalar) bool {
	sc, ok := v.ty.Kind().(types.TScalar)
	return ok && sc.Scalar == s
}

// AsInt returns the integer payload, or false when the value is not an
// Int. The same comma-ok shape applies to the other accessors below.
func (v Value[H]) AsInt() (int64, bool) {
	if !v.scalar(types.Int) {
		return 0, false
	}
	return v.b.Int(v.h), true
}

func (v Value[H]) AsBool() (bool, bool) {
	if !v.scalar(types.Bool) {
		return false, false
	}
	return v.b.Bool(v.h), true
}

func (v Value[H]) AsFloat() (float64, bool) {
	if !v.scalar(types.Float) {
		return 0, false
	}
	return v.b.Float(v.h), true
}

func (v Value[H]) AsStr() (string, bool) {
	if !v.scalar(types.Str) {
		return "", false
	}
	return v.b.Str(v.h), true
}

func (v Value[H]) AsArray() (ArrayView[H], bool) {
	arr, ok := v.ty.Kind().(types.TArray)
	if !ok {
		return ArrayView[H]{}, false
	}
	return ArrayView[H]{elem: arr.Elem, b: v.b, h: v.h}, true
}

func (v Value[H]) AsFunc() (*Function[H], bool) {
	if _, ok := v.ty.Kind().(types.TFunc); !ok {
		return nil, false
	}
	return v.b.Func(v.h), true
}

func (v Value[H]) AsRecord() (RecordView[H], bool) {
	rec, ok := v.ty.Kind().(types.TRecord)
	if !ok {
		return RecordView[H]{}, false
	}
	return RecordView[H]{fields: rec.Fields, b: v.b, h: v.h}, true
}

// NewRecordValue builds a record value. fields must be the record
// type's canonical (sorted) field list and values must line up with it;
// storage reuses the flat array encoding, one slot per field.
func NewRecordValue[H any](b Builder[H], recTy types.Ty, values []Value[H]) Value[H] {
	rec, ok := recTy.Kind().(types.TRecord)
	if !ok || len(rec.Fields) != len(values) {
		panic("runtime: malformed record construction")
	}
	handles := make([]H, len(values))
	for i, v := range values {
		if !b.Types().TyEqual(v.Ty(), rec.Fields[i].Type) {
			panic("runtime: record field type mismatch")
		}
		handles[i] = v.Handle()
	}
	return Wrap(b, recTy, b.AllocArray(handles))
}
