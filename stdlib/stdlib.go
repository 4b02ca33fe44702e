// Package stdlib provides the native packages shipped with the engine:
// math and ints (numeric helpers), arrays and strings. Every parameter
// and return value crosses the host boundary through a runtime
// Marshaler; nothing reads raw storage directly.
//
// Packages are module records: `math` is a record whose fields are
// functions and constants, so programs write math.sqrt(2.0).
package stdlib

import (
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/engine"
	"github.com/kavolang/kavo/runtime"
)

type word = runtime.Word

type value = runtime.Value[word]

type builder = runtime.Builder[word]

var (
	intM   = runtime.IntMarshal[word]{}
	floatM = runtime.FloatMarshal[word]{}
	boolM  = runtime.BoolMarshal[word]{}
	strM   = runtime.StrMarshal[word]{}
)

// Install registers every stdlib package. Meant to be called from the
// engine.New registration callback.
func Install(tb *types.Arena, eb *engine.EnvironmentBuilder) {
	installMath(tb, eb)
	installInts(tb, eb)
	installArrays(tb, eb)
	installStrings(tb, eb)
}

// entry is one field of a module record: a function or a constant.
type entry struct {
	name string
	ty   types.Ty
	make func(b builder) value
}

func fnEntry(fn *runtime.Function[word]) entry {
	return entry{
		name: fn.Name,
		ty:   fn.Ty,
		make: func(b builder) value {
			return runtime.NewFuncValue(b, fn)
		},
	}
}

func floatEntry(tb types.Builder, name string, v float64) entry {
	return entry{
		name: name,
		ty:   types.NewScalar(tb, types.Float),
		make: func(b builder) value {
			return runtime.NewFloat(b, v)
		},
	}
}

func bindModule(tb *types.Arena, eb *engine.EnvironmentBuilder, name string, entries []entry) {
	fields := make([]types.Field, len(entries))
	byName := make(map[string]entry, len(entries))
	for i, e := range entries {
		fields[i] = types.Field{Name: tb.AllocIdent(e.name), Type: e.ty}
		byName[e.name] = e
	}
	recTy := types.NewRecord(tb, fields)
	rec := recTy.Kind().(types.TRecord)

	eb.Bind(name, recTy, func(b builder) value {
		values := make([]value, len(rec.Fields))
		for i, f := range rec.Fields {
			values[i] = byName[string(f.Name)].make(b)
		}
		return runtime.NewRecordValue(b, recTy, values)
	})
}

func unmarshalArg[E any](m runtime.Marshaler[E, word], v value) E {
	return m.Unmarshal(v.Builder(), v.Handle())
}

func marshalRet[E any](m runtime.Marshaler[E, word], b builder, v E) value {
	return runtime.Wrap(b, m.Ty(b.Types()), m.Marshal(b, v))
}

// fn1 builds a one-argument host function from marshalers and a Go
// body. fn2 and fn3 are its wider siblings.
func fn1[A, R any](tb *types.Arena, name string, am runtime.Marshaler[A, word], rm runtime.Marshaler[R, word], impl func(A) R) *runtime.Function[word] {
	return &runtime.Function[word]{
		Name: name,
		Ty:   types.NewFunc(tb, []types.Ty{am.Ty(tb)}, rm.Ty(tb)),
		Impl: func(b builder, args []value) (value, error) {
			return marshalRet(rm, b, impl(unmarshalArg(am, args[0]))), nil
		},
	}
}

func fn2[A, B, R any](tb *types.Arena, name string, am runtime.Marshaler[A, word], bm runtime.Marshaler[B, word], rm runtime.Marshaler[R, word], impl func(A, B) R) *runtime.Function[word] {
	return &runtime.Function[word]{
		Name: name,
		Ty:   types.NewFunc(tb, []types.Ty{am.Ty(tb), bm.Ty(tb)}, rm.Ty(tb)),
		Impl: func(b builder, args []value) (value, error) {
			return marshalRet(rm, b, impl(unmarshalArg(am, args[0]), unmarshalArg(bm, args[1]))), nil
		},
	}
}

func fn3[A, B, C, R any](tb *types.Arena, name string, am runtime.Marshaler[A, word], bm runtime.Marshaler[B, word], cm runtime.Marshaler[C, word], rm runtime.Marshaler[R, word], impl func(A, B, C) R) *runtime.Function[word] {
	return &runtime.Function[word]{
		Name: name,
		Ty:   types.NewFunc(tb, []types.Ty{am.Ty(tb), bm.Ty(tb), cm.Ty(tb)}, rm.Ty(tb)),
		Impl: func(b builder, args []value) (value, error) {
			return marshalRet(rm, b, impl(unmarshalArg(am, args[0]), unmarshalArg(bm, args[1]), unmarshalArg(cm, args[2]))), nil
		},
	}
}
