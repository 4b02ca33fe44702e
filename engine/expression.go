package engine

import (
	"github.com/pkg/errors"

	"github.com/kavolang/kavo/compiler/analyzer"
	"github.com/kavolang/kavo/compiler/ast"
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/runtime"
)

// Expression is a compiled, type-checked expression bound to its
// engine. It may be evaluated many times, each run in its own value
// builder.
type Expression struct {
	engine *Engine
	src    string
	root   ast.Expr
	info   *analyzer.Info
	params []Param
}

// Ty is the expression's result type.
func (x *Expression) Ty() types.Ty {
	return x.info.Ty
}

// Source returns the expression's source text.
func (x *Expression) Source() string {
	return x.src
}

func (x *Expression) checkArgs(args []runtime.Value[runtime.Word]) error {
	if len(args) != len(x.params) {
		return errors.Errorf("wrong number of arguments: expected %d, got %d",
			len(x.params), len(args))
	}
	for i, arg := range args {
		if !x.engine.tb.TyEqual(arg.Ty(), x.params[i].Ty) {
			return errors.Errorf("argument %q: expected %s, got %s",
				x.params[i].Name, x.params[i].Ty, arg.Ty())
		}
	}
	return nil
}

// Run evaluates the expression in b with one argument per declared
// parameter. Arguments may live in any builder; the result is allocated
// in b.
func (x *Expression) Run(b runtime.Builder[runtime.Word], args ...runtime.Value[runtime.Word]) (runtime.Value[runtime.Word], error) {
	if err := x.checkArgs(args); err != nil {
		return runtime.Value[runtime.Word]{}, err
	}
	ev := &evaluator{
		b:       b,
		info:    x.info,
		globals: x.engine.globals,
		cache:   make(map[string]runtime.Value[runtime.Word]),
		budget:  x.engine.opts.MaxSteps,
	}
	env := (*evalEnv)(nil)
	for i, p := range x.params {
		env = env.bind(p.Name, args[i])
	}
	out, err := ev.eval(x.root, env)
	if err != nil {
		return runtime.Value[runtime.Word]{}, err
	}
	// Arguments can pass through as the result; make sure the caller
	// always gets a value backed by b.
	return ev.adopt(out), nil
}

// RunIsolated evaluates in a private scratch arena that is dropped when
// the call returns. Copyable results (Int, Bool, Float, arrays of
// those) are promoted into the engine's long-lived builder; anything
// else keeps the scratch arena alive for as long as the returned value
// is referenced.
func (x *Expression) RunIsolated(args ...runtime.Value[runtime.Word]) (runtime.Value[runtime.Word], error) {
	scratch := runtime.NewArena(x.engine.tb)
	out, err := x.Run(scratch, args...)
	if err != nil {
		return runtime.Value[runtime.Word]{}, err
	}
	if runtime.Copyable(out.Ty()) {
		return runtime.CopyValue(x.engine.keep, out), nil
	}
	return out, nil
}
