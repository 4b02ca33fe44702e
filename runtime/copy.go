package runtime

import (
	"github.com/kavolang/kavo/compiler/types"
)

// Copyable reports whether values of type ty can cross builders through
// CopyValue.
func Copyable(ty types.Ty) bool {
	switch k := ty.Kind().(type) {
	case types.TScalar:
		return k.Scalar == types.Int || k.Scalar == types.Bool || k.Scalar == types.Float
	case types.TArray:
		return Copyable(k.Elem)
	default:
		return false
	}
}

// CopyValue reconstructs v inside dst, re-allocating the type and every
// element so the result shares no storage with the source builder. The
// source arena can be dropped immediately after the copy.
//
// Only Int, Bool, Float and Array values can be copied; passing
// anything else is a contract violation.
func CopyValue[S any, D any](dst Builder[D], v Value[S]) Value[D] {
	switch k := v.Ty().Kind().(type) {
	case types.TScalar:
		switch k.Scalar {
		case types.Int:
			n, _ := v.AsInt()
			return NewInt(dst, n)
		case types.Bool:
			b, _ := v.AsBool()
			return NewBool(dst, b)
		case types.Float:
			f, _ := v.AsFloat()
			return NewFloat(dst, f)
		}
	case types.TArray:
		view, _ := v.AsArray()
		elemTy := types.CopyType(dst.Types(), k.Elem)
		handles := make([]D, view.Len())
		for i := range handles {
			elem, _ := view.At(i)
			handles[i] = CopyValue(dst, elem).Handle()
		}
		return Wrap(dst, types.NewArray(dst.Types(), elemTy), dst.AllocArray(handles))
	}
	panic("runtime: cannot copy value of type " + v.Ty().String())
}
