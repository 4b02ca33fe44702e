// Package engine is the embedding API: construct an Engine with the
// host's globals, compile expressions against it, and evaluate them in
// value builders the caller controls.
package engine

import (
	"github.com/pkg/errors"

	"github.com/kavolang/kavo/compiler/analyzer"
	"github.com/kavolang/kavo/compiler/parser"
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/runtime"
)

// Options tunes engine limits. Zero values select the defaults.
type Options struct {
	// MaxParseDepth bounds expression nesting; defaults to
	// parser.DefaultMaxDepth.
	MaxParseDepth int

	// MaxSteps bounds the number of nodes one evaluation may visit.
	// Zero means unlimited.
	MaxSteps int
}

// Engine owns a type arena, the global environment and a long-lived
// value builder for promoted results. Engines are immutable after New
// and safe to compile against from multiple goroutines as long as the
// type arena is not shared with concurrent compilations.
type Engine struct {
	tb      *types.Arena
	opts    Options
	globals map[string]globalDef
	keep    *runtime.Arena
}

// New builds an engine. register receives the type arena and an
// environment builder and installs the host's globals; binding a name
// twice is reported through a *DuplicateError listing every offender.
func New(opts Options, register func(tb *types.Arena, eb *EnvironmentBuilder)) (*Engine, error) {
	if opts.MaxParseDepth == 0 {
		opts.MaxParseDepth = parser.DefaultMaxDepth
	}
	tb := types.NewArena()
	eb := newEnvironmentBuilder(tb)
	if register != nil {
		register(tb, eb)
	}
	globals, err := eb.finish()
	if err != nil {
		return nil, err
	}
	return &Engine{
		tb:      tb,
		opts:    opts,
		globals: globals,
		keep:    runtime.NewArena(tb),
	}, nil
}

// Types returns the engine's type arena. Parameter and argument types
// must be built from it.
func (e *Engine) Types() *types.Arena {
	return e.tb
}

// Param declares a compile-time parameter of an expression.
type Param struct {
	Name string
	Ty   types.Ty
}

// Compile parses and type-checks src. Parameters shadow globals of the
// same name. On failure the error is either a parse error or an
// analyzer.Diagnostics carrying every finding.
func (e *Engine) Compile(src string, params ...Param) (*Expression, error) {
	expr, err := parser.ParseWithDepth(src, e.opts.MaxParseDepth)
	if err != nil {
		return nil, err
	}

	scope := analyzer.NewScope()
	for name, def := range e.globals {
		scope = scope.Bind(name, def.ty)
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return nil, errors.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
		scope = scope.Bind(p.Name, p.Ty)
	}

	info, diags := analyzer.Analyze(e.tb, expr, scope)
	if diags.HasErrors() {
		return nil, diags
	}
	return &Expression{
		engine: e,
		src:    src,
		root:   expr,
		info:   info,
		params: params,
	}, nil
}
