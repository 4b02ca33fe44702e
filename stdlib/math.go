package stdlib

import (
	"math"

	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/engine"
	"github.com/kavolang/kavo/runtime"
)

// Generic numeric bodies, written once over the Numeric constraint and
// instantiated for int64 (the ints package) and float64 (math).

func absN[N runtime.Numeric](v N) N {
	if v < 0 {
		return -v
	}
	return v
}

func minN[N runtime.Numeric](a, b N) N {
	if a < b {
		return a
	}
	return b
}

func maxN[N runtime.Numeric](a, b N) N {
	if a > b {
		return a
	}
	return b
}

func clampN[N runtime.Numeric](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func installMath(tb *types.Arena, eb *engine.EnvironmentBuilder) {
	bindModule(tb, eb, "math", []entry{
		fnEntry(fn1(tb, "abs", floatM, floatM, absN[float64])),
		fnEntry(fn2(tb, "min", floatM, floatM, floatM, minN[float64])),
		fnEntry(fn2(tb, "max", floatM, floatM, floatM, maxN[float64])),
		fnEntry(fn3(tb, "clamp", floatM, floatM, floatM, floatM, clampN[float64])),
		fnEntry(fn1(tb, "floor", floatM, floatM, math.Floor)),
		fnEntry(fn1(tb, "ceil", floatM, floatM, math.Ceil)),
		fnEntry(fn1(tb, "round", floatM, floatM, math.Round)),
		fnEntry(fn1(tb, "sqrt", floatM, floatM, math.Sqrt)),
		fnEntry(fn2(tb, "pow", floatM, floatM, floatM, math.Pow)),
		floatEntry(tb, "pi", math.Pi),
		floatEntry(tb, "e", math.E),
	})
}

func installInts(tb *types.Arena, eb *engine.EnvironmentBuilder) {
	bindModule(tb, eb, "ints", []entry{
		fnEntry(fn1(tb, "abs", intM, intM, absN[int64])),
		fnEntry(fn2(tb, "min", intM, intM, intM, minN[int64])),
		fnEntry(fn2(tb, "max", intM, intM, intM, maxN[int64])),
		fnEntry(fn3(tb, "clamp", intM, intM, intM, intM, clampN[int64])),
		fnEntry(fn1(tb, "toFloat", intM, floatM, func(v int64) float64 {
			return float64(v)
		})),
	})
}
