package stdlib

import (
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/engine"
	"github.com/kavolang/kavo/runtime"
)

func sumN[N runtime.Numeric](xs []N) N {
	var total N
	for _, x := range xs {
		total += x
	}
	return total
}

func reverseN[N runtime.Numeric](xs []N) []N {
	out := make([]N, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

func containsN[N runtime.Numeric](xs []N, x N) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func installArrays(tb *types.Arena, eb *engine.EnvironmentBuilder) {
	intsM := runtime.ArrayMarshal[int64, word]{Elem: intM}
	floatsM := runtime.ArrayMarshal[float64, word]{Elem: floatM}

	bindModule(tb, eb, "arrays", []entry{
		fnEntry(fn1(tb, "len", intsM, intM, func(xs []int64) int64 {
			return int64(len(xs))
		})),
		fnEntry(fn1(tb, "sum", intsM, intM, sumN[int64])),
		fnEntry(fn1(tb, "reverse", intsM, intsM, reverseN[int64])),
		fnEntry(fn2(tb, "contains", intsM, intM, boolM, containsN[int64])),
		fnEntry(fn1(tb, "lenf", floatsM, intM, func(xs []float64) int64 {
			return int64(len(xs))
		})),
		fnEntry(fn1(tb, "sumf", floatsM, floatM, sumN[float64])),
		fnEntry(fn1(tb, "reversef", floatsM, floatsM, reverseN[float64])),
		fnEntry(fn2(tb, "containsf", floatsM, floatM, boolM, containsN[float64])),
	})
}
