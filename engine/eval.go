package engine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/kavolang/kavo/compiler/analyzer"
	"github.com/kavolang/kavo/compiler/ast"
	"github.com/kavolang/kavo/compiler/lexer"
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/runtime"
)

// EvalError is a recoverable runtime failure: division by zero, an
// index out of range, an exhausted step budget. It points at the
// expression that failed.
type EvalError struct {
	Span lexer.Span
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

type word = runtime.Word

type val = runtime.Value[word]

// evalEnv is the runtime binding chain: parameters at the bottom,
// where-bindings layered on top.
type evalEnv struct {
	name  string
	value val
	next  *evalEnv
}

func (e *evalEnv) bind(name string, v val) *evalEnv {
	return &evalEnv{name: name, value: v, next: e}
}

func (e *evalEnv) lookup(name string) (val, bool) {
	for ; e != nil; e = e.next {
		if e.name == name {
			return e.value, true
		}
	}
	return val{}, false
}

type evaluator struct {
	b       runtime.Builder[word]
	info    *analyzer.Info
	globals map[string]globalDef
	cache   map[string]val
	budget  int
	steps   int
}

func (ev *evaluator) errf(span lexer.Span, format string, args ...interface{}) error {
	return &EvalError{Span: span, Msg: fmt.Sprintf(format, args...)}
}

func (ev *evaluator) tyOf(e ast.Expr) types.Ty {
	ty, ok := ev.info.Types[e]
	if !ok {
		panic("engine: expression missing from analysis info")
	}
	return ty
}

// adopt re-allocates v in the evaluator's builder when it came from a
// different one, so composite construction never mixes raw handles
// across builders.
func (ev *evaluator) adopt(v val) val {
	if v.Builder() == ev.b {
		return v
	}
	switch k := v.Ty().Kind().(type) {
	case types.TScalar:
		switch k.Scalar {
		case types.Int:
			n, _ := v.AsInt()
			return runtime.NewInt(ev.b, n)
		case types.Bool:
			b, _ := v.AsBool()
			return runtime.NewBool(ev.b, b)
		case types.Float:
			f, _ := v.AsFloat()
			return runtime.NewFloat(ev.b, f)
		case types.Str:
			s, _ := v.AsStr()
			return runtime.NewStr(ev.b, s)
		}
	case types.TArray:
		view, _ := v.AsArray()
		elems := make([]val, view.Len())
		for i := range elems {
			elem, _ := view.At(i)
			elems[i] = ev.adopt(elem)
		}
		return runtime.NewArrayValue(ev.b, k.Elem, elems)
	case types.TRecord:
		view, _ := v.AsRecord()
		values := make([]val, view.Len())
		for i := range values {
			_, fv, _ := view.At(i)
			values[i] = ev.adopt(fv)
		}
		return runtime.NewRecordValue(ev.b, v.Ty(), values)
	case types.TFunc:
		fn, _ := v.AsFunc()
		return runtime.NewFuncValue(ev.b, fn)
	}
	panic("engine: cannot adopt value of type " + v.Ty().String())
}

func (ev *evaluator) eval(e ast.Expr, env *evalEnv) (val, error) {
	if ev.budget > 0 {
		ev.steps++
		if ev.steps > ev.budget {
			return val{}, ev.errf(e.Span(), "evaluation budget of %d steps exceeded", ev.budget)
		}
	}

	switch n := e.(type) {
	case *ast.IntLit:
		return runtime.NewInt(ev.b, n.Value), nil
	case *ast.FloatLit:
		return runtime.NewFloat(ev.b, n.Value), nil
	case *ast.BoolLit:
		return runtime.NewBool(ev.b, n.Value), nil
	case *ast.StrLit:
		return runtime.NewStr(ev.b, n.Value), nil
	case *ast.Var:
		return ev.evalVar(n, env)
	case *ast.ArrayLit:
		return ev.evalArray(n, env)
	case *ast.RecordLit:
		return ev.evalRecord(n, env)
	case *ast.Unary:
		return ev.evalUnary(n, env)
	case *ast.Binary:
		return ev.evalBinary(n, env)
	case *ast.If:
		return ev.evalIf(n, env)
	case *ast.Call:
		return ev.evalCall(n, env)
	case *ast.Index:
		return ev.evalIndex(n, env)
	case *ast.Field:
		return ev.evalField(n, env)
	case *ast.Where:
		return ev.evalWhere(n, env)
	default:
		panic(fmt.Sprintf("engine: unhandled expression %T", e))
	}
}

func (ev *evaluator) evalVar(n *ast.Var, env *evalEnv) (val, error) {
	if v, ok := env.lookup(n.Name); ok {
		return v, nil
	}
	if v, ok := ev.cache[n.Name]; ok {
		return v, nil
	}
	def, ok := ev.globals[n.Name]
	if !ok {
		panic("engine: unresolved name survived analysis: " + n.Name)
	}
	v := def.make(ev.b)
	ev.cache[n.Name] = v
	return v, nil
}

func (ev *evaluator) evalArray(n *ast.ArrayLit, env *evalEnv) (val, error) {
	elemTy := ev.tyOf(n).Kind().(types.TArray).Elem
	elems := make([]val, len(n.Elems))
	for i, el := range n.Elems {
		v, err := ev.eval(el, env)
		if err != nil {
			return val{}, err
		}
		elems[i] = ev.adopt(v)
	}
	return runtime.NewArrayValue(ev.b, elemTy, elems), nil
}

func (ev *evaluator) evalRecord(n *ast.RecordLit, env *evalEnv) (val, error) {
	recTy := ev.tyOf(n)
	byName := make(map[string]val, len(n.Fields))
	for _, f := range n.Fields {
		v, err := ev.eval(f.Value, env)
		if err != nil {
			return val{}, err
		}
		byName[f.Name] = ev.adopt(v)
	}
	fields := recTy.Kind().(types.TRecord).Fields
	values := make([]val, len(fields))
	for i, f := range fields {
		values[i] = byName[string(f.Name)]
	}
	return runtime.NewRecordValue(ev.b, recTy, values), nil
}

func (ev *evaluator) evalUnary(n *ast.Unary, env *evalEnv) (val, error) {
	operand, err := ev.eval(n.Operand, env)
	if err != nil {
		return val{}, err
	}
	switch n.Op {
	case ast.Not:
		b, _ := operand.AsBool()
		return runtime.NewBool(ev.b, !b), nil
	case ast.Neg:
		if f, ok := operand.AsFloat(); ok {
			return runtime.NewFloat(ev.b, -f), nil
		}
		i, _ := operand.AsInt()
		return runtime.NewInt(ev.b, -i), nil
	default:
		panic("engine: unhandled unary operator")
	}
}

func (ev *evaluator) evalBinary(n *ast.Binary, env *evalEnv) (val, error) {
	// and/or short-circuit; everything else is strict.
	if n.Op.Logical() {
		left, err := ev.eval(n.Left, env)
		if err != nil {
			return val{}, err
		}
		lb, _ := left.AsBool()
		if (n.Op == ast.And && !lb) || (n.Op == ast.Or && lb) {
			return runtime.NewBool(ev.b, lb), nil
		}
		right, err := ev.eval(n.Right, env)
		if err != nil {
			return val{}, err
		}
		rb, _ := right.AsBool()
		return runtime.NewBool(ev.b, rb), nil
	}

	left, err := ev.eval(n.Left, env)
	if err != nil {
		return val{}, err
	}
	right, err := ev.eval(n.Right, env)
	if err != nil {
		return val{}, err
	}

	switch n.Op {
	case ast.Eq:
		return runtime.NewBool(ev.b, valueEqual(left, right)), nil
	case ast.Ne:
		return runtime.NewBool(ev.b, !valueEqual(left, right)), nil
	}

	if n.Op.Comparison() {
		return ev.compare(n, left, right)
	}
	return ev.arith(n, left, right)
}

func (ev *evaluator) compare(n *ast.Binary, left, right val) (val, error) {
	var cmp int
	switch {
	case ev.isScalar(n.Left, types.Str):
		l, _ := left.AsStr()
		r, _ := right.AsStr()
		cmp = compareOrdered(l, r)
	case ev.isScalar(n.Left, types.Float):
		l, _ := left.AsFloat()
		r, _ := right.AsFloat()
		cmp = compareOrdered(l, r)
	default:
		l, _ := left.AsInt()
		r, _ := right.AsInt()
		cmp = compareOrdered(l, r)
	}

	var out bool
	switch n.Op {
	case ast.Lt:
		out = cmp < 0
	case ast.Le:
		out = cmp <= 0
	case ast.Gt:
		out = cmp > 0
	case ast.Ge:
		out = cmp >= 0
	}
	return runtime.NewBool(ev.b, out), nil
}

func (ev *evaluator) arith(n *ast.Binary, left, right val) (val, error) {
	if ev.isScalar(n, types.Float) {
		l, _ := left.AsFloat()
		r, _ := right.AsFloat()
		switch n.Op {
		case ast.Add:
			return runtime.NewFloat(ev.b, l+r), nil
		case ast.Sub:
			return runtime.NewFloat(ev.b, l-r), nil
		case ast.Mul:
			return runtime.NewFloat(ev.b, l*r), nil
		case ast.Div:
			if r == 0 {
				return val{}, ev.errf(n.Sp, "division by zero")
			}
			return runtime.NewFloat(ev.b, l/r), nil
		}
		panic("engine: unhandled float operator " + n.Op.String())
	}

	l, _ := left.AsInt()
	r, _ := right.AsInt()
	switch n.Op {
	case ast.Add:
		return runtime.NewInt(ev.b, l+r), nil
	case ast.Sub:
		return runtime.NewInt(ev.b, l-r), nil
	case ast.Mul:
		return runtime.NewInt(ev.b, l*r), nil
	case ast.Div:
		if r == 0 {
			return val{}, ev.errf(n.Sp, "division by zero")
		}
		return runtime.NewInt(ev.b, l/r), nil
	case ast.Mod:
		if r == 0 {
			return val{}, ev.errf(n.Sp, "division by zero")
		}
		return runtime.NewInt(ev.b, l%r), nil
	}
	panic("engine: unhandled integer operator " + n.Op.String())
}

func (ev *evaluator) isScalar(e ast.Expr, s types.Scalar) bool {
	sc, ok := ev.tyOf(e).Kind().(types.TScalar)
	return ok && sc.Scalar == s
}

func (ev *evaluator) evalIf(n *ast.If, env *evalEnv) (val, error) {
	cond, err := ev.eval(n.Cond, env)
	if err != nil {
		return val{}, err
	}
	if c, _ := cond.AsBool(); c {
		return ev.eval(n.Then, env)
	}
	return ev.eval(n.Else, env)
}

func (ev *evaluator) evalCall(n *ast.Call, env *evalEnv) (val, error) {
	fnVal, err := ev.eval(n.Fn, env)
	if err != nil {
		return val{}, err
	}
	fn, _ := fnVal.AsFunc()
	args := make([]val, len(n.Args))
	for i, a := range n.Args {
		if args[i], err = ev.eval(a, env); err != nil {
			return val{}, err
		}
	}
	out, err := fn.Impl(ev.b, args)
	if err != nil {
		return val{}, errors.Wrapf(err, "%s: call to %s failed", n.Sp.Start, fn.Name)
	}
	return out, nil
}

func (ev *evaluator) evalIndex(n *ast.Index, env *evalEnv) (val, error) {
	target, err := ev.eval(n.Target, env)
	if err != nil {
		return val{}, err
	}
	idx, err := ev.eval(n.Idx, env)
	if err != nil {
		return val{}, err
	}
	view, ok := target.AsArray()
	if !ok {
		// Map values are not constructible, so a map index can never
		// reach evaluation.
		panic("engine: index target is not an array")
	}
	i, _ := idx.AsInt()
	elem, ok := view.At(int(i))
	if !ok {
		return val{}, ev.errf(n.Sp, "index %d out of range for length %d", i, view.Len())
	}
	return elem, nil
}

func (ev *evaluator) evalField(n *ast.Field, env *evalEnv) (val, error) {
	target, err := ev.eval(n.Target, env)
	if err != nil {
		return val{}, err
	}
	view, ok := target.AsRecord()
	if !ok {
		panic("engine: field target is not a record")
	}
	v, ok := view.Field(n.Name)
	if !ok {
		panic("engine: missing field survived analysis: " + n.Name)
	}
	return v, nil
}

func (ev *evaluator) evalWhere(n *ast.Where, env *evalEnv) (val, error) {
	for _, b := range n.Bindings {
		v, err := ev.eval(b.Value, env)
		if err != nil {
			return val{}, err
		}
		env = env.bind(b.Name, v)
	}
	return ev.eval(n.Body, env)
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// valueEqual is structural equality over comparable values. Analysis
// guarantees both sides share a Hashable type.
func valueEqual(a, b val) bool {
	switch k := a.Ty().Kind().(type) {
	case types.TScalar:
		switch k.Scalar {
		case types.Int:
			l, _ := a.AsInt()
			r, _ := b.AsInt()
			return l == r
		case types.Bool:
			l, _ := a.AsBool()
			r, _ := b.AsBool()
			return l == r
		case types.Float:
			l, _ := a.AsFloat()
			r, _ := b.AsFloat()
			return l == r
		case types.Str:
			l, _ := a.AsStr()
			r, _ := b.AsStr()
			return l == r
		}
	case types.TArray:
		la, _ := a.AsArray()
		lb, _ := b.AsArray()
		if la.Len() != lb.Len() {
			return false
		}
		for i := 0; i < la.Len(); i++ {
			x, _ := la.At(i)
			y, _ := lb.At(i)
			if !valueEqual(x, y) {
				return false
			}
		}
		return true
	}
	panic("engine: equality on non-comparable type " + a.Ty().String())
}
