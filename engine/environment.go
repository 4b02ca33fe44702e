package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/runtime"
)

// DuplicateError reports every name bound more than once during engine
// construction. All offenders come back together so the registration
// code can be fixed in one pass.
type DuplicateError struct {
	Names []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate bindings: %s", strings.Join(e.Names, ", "))
}

// globalDef is a registered global: its type plus a constructor that
// materializes the value in whichever builder a run uses. Globals stay
// builder-independent so every evaluation owns its allocations.
type globalDef struct {
	ty   types.Ty
	make func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word]
}

// EnvironmentBuilder collects the global bindings of an engine. It is
// only valid inside the registration callback passed to New.
type EnvironmentBuilder struct {
	tb   *types.Arena
	defs map[string]globalDef
	dups map[string]bool
}

func newEnvironmentBuilder(tb *types.Arena) *EnvironmentBuilder {
	return &EnvironmentBuilder{
		tb:   tb,
		defs: make(map[string]globalDef),
		dups: make(map[string]bool),
	}
}

// Types returns the engine's type builder, for registration code that
// needs to spell out function types.
func (eb *EnvironmentBuilder) Types() *types.Arena {
	return eb.tb
}

func (eb *EnvironmentBuilder) bind(name string, def globalDef) {
	if _, exists := eb.defs[name]; exists {
		eb.dups[name] = true
		return
	}
	eb.defs[name] = def
}

// Bind registers a global with an explicit type and a constructor that
// builds its value in the run's builder. The typed helpers below cover
// the common cases; Bind is for composite globals such as module
// records.
func (eb *EnvironmentBuilder) Bind(name string, ty types.Ty, make func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word]) {
	eb.bind(name, globalDef{ty: ty, make: make})
}

func (eb *EnvironmentBuilder) BindInt(name string, v int64) {
	eb.bind(name, globalDef{
		ty: types.NewScalar(eb.tb, types.Int),
		make: func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word] {
			return runtime.NewInt(b, v)
		},
	})
}

func (eb *EnvironmentBuilder) BindBool(name string, v bool) {
	eb.bind(name, globalDef{
		ty: types.NewScalar(eb.tb, types.Bool),
		make: func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word] {
			return runtime.NewBool(b, v)
		},
	})
}

func (eb *EnvironmentBuilder) BindFloat(name string, v float64) {
	eb.bind(name, globalDef{
		ty: types.NewScalar(eb.tb, types.Float),
		make: func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word] {
			return runtime.NewFloat(b, v)
		},
	})
}

func (eb *EnvironmentBuilder) BindStr(name string, v string) {
	eb.bind(name, globalDef{
		ty: types.NewScalar(eb.tb, types.Str),
		make: func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word] {
			return runtime.NewStr(b, v)
		},
	})
}

// BindFunc registers a host function under fn.Name. fn.Ty must be a
// function type built from this engine's type arena.
func (eb *EnvironmentBuilder) BindFunc(fn *runtime.Function[runtime.Word]) {
	if _, ok := fn.Ty.Kind().(types.TFunc); !ok {
		panic("engine: BindFunc needs a function type, got " + fn.Ty.String())
	}
	eb.bind(fn.Name, globalDef{
		ty: fn.Ty,
		make: func(b runtime.Builder[runtime.Word]) runtime.Value[runtime.Word] {
			return runtime.NewFuncValue(b, fn)
		},
	})
}

func (eb *EnvironmentBuilder) finish() (map[string]globalDef, error) {
	if len(eb.dups) > 0 {
		names := make([]string, 0, len(eb.dups))
		for name := range eb.dups {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &DuplicateError{Names: names}
	}
	return eb.defs, nil
}
