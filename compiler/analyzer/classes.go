package analyzer

import (
	"github.com/kavolang/kavo/compiler/types"
)

// Class is a type class over the closed type algebra. Instances are
// fixed; there is no user-defined instance mechanism.
type Class int

const (
	// Numeric: Int, Float. Arithmetic and unary minus.
	Numeric Class = iota
	// Ord: Int, Float, Str. Ordering comparisons.
	Ord
	// Indexable: Array, Map. The index operator.
	Indexable
	// Hashable: scalars, Symbol, Array of Hashable. Equality and map keys.
	Hashable
)

func (c Class) String() string {
	switch c {
	case Numeric:
		return "Numeric"
	case Ord:
		return "Ord"
	case Indexable:
		return "Indexable"
	case Hashable:
		return "Hashable"
	default:
		return "?"
	}
}

// HasInstance reports whether ty is an instance of c. Type variables
// are never instances; resolve them first.
func HasInstance(c Class, ty types.Ty) bool {
	switch c {
	case Numeric:
		sc, ok := ty.Kind().(types.TScalar)
		return ok && (sc.Scalar == types.Int || sc.Scalar == types.Float)
	case Ord:
		sc, ok := ty.Kind().(types.TScalar)
		return ok && (sc.Scalar == types.Int || sc.Scalar == types.Float || sc.Scalar == types.Str)
	case Indexable:
		switch ty.Kind().(type) {
		case types.TArray, types.TMap:
			return true
		}
		return false
	case Hashable:
		switch k := ty.Kind().(type) {
		case types.TScalar, types.TSymbol:
			return true
		case types.TArray:
			return HasInstance(Hashable, k.Elem)
		}
		return false
	default:
		return false
	}
}
