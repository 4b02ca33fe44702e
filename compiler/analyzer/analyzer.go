// Package analyzer type-checks parsed expressions against the type
// algebra. Inference is deliberately small: unification variables exist
// for empty array literals and error recovery, there is no
// generalization. Every finding is collected; analysis never stops at
// the first error.
package analyzer

import (
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/kavolang/kavo/compiler/ast"
	"github.com/kavolang/kavo/compiler/lexer"
	"github.com/kavolang/kavo/compiler/types"
)

// Scope is an immutable binding environment. Bind returns a new scope
// sharing structure with the old one, so each `where` block layers its
// bindings without copying the enclosing environment.
type Scope struct {
	m *immutable.Map[string, types.Ty]
}

func NewScope() *Scope {
	return &Scope{m: immutable.NewMap[string, types.Ty](nil)}
}

func (s *Scope) Bind(name string, ty types.Ty) *Scope {
	return &Scope{m: s.m.Set(name, ty)}
}

func (s *Scope) Lookup(name string) (types.Ty, bool) {
	return s.m.Get(name)
}

// Info is the analyzer's output: the expression's type and the type of
// every subexpression, with the final substitution applied.
type Info struct {
	Ty    types.Ty
	Types map[ast.Expr]types.Ty
}

type analyzer struct {
	tb    types.Builder
	diags Diagnostics
	subst map[uint16]types.Ty
	next  uint16
	exprs map[ast.Expr]types.Ty
}

// Analyze type-checks expr in scope, allocating types through tb. The
// returned diagnostics are complete; Info is meaningful only when they
// carry no errors.
func Analyze(tb types.Builder, expr ast.Expr, scope *Scope) (*Info, Diagnostics) {
	a := &analyzer{
		tb:    tb,
		subst: make(map[uint16]types.Ty),
		exprs: make(map[ast.Expr]types.Ty),
	}
	root := a.infer(expr, scope)
	root = a.applySubst(root)
	for e, ty := range a.exprs {
		a.exprs[e] = a.applySubst(ty)
	}
	if root.Flags()&types.HasTypeVars != 0 && !a.diags.HasErrors() {
		a.errorf(expr.Span(), "cannot infer a complete type; got %s", root)
	}
	return &Info{Ty: root, Types: a.exprs}, a.diags
}

func (a *analyzer) errorf(span lexer.Span, format string, args ...interface{}) {
	a.diags = append(a.diags, Diagnostic{
		Severity: Error,
		Span:     span,
		Msg:      fmt.Sprintf(format, args...),
	})
}

func (a *analyzer) helpf(span lexer.Span, help, format string, args ...interface{}) {
	a.diags = append(a.diags, Diagnostic{
		Severity: Error,
		Span:     span,
		Msg:      fmt.Sprintf(format, args...),
		Help:     help,
	})
}

func (a *analyzer) fresh() types.Ty {
	id := a.next
	a.next++
	return types.NewVar(a.tb, id)
}

func (a *analyzer) scalar(s types.Scalar) types.Ty {
	return types.NewScalar(a.tb, s)
}

func (a *analyzer) record(e ast.Expr, ty types.Ty) types.Ty {
	a.exprs[e] = ty
	return ty
}

func (a *analyzer) infer(e ast.Expr, scope *Scope) types.Ty {
	switch n := e.(type) {
	case *ast.IntLit:
		return a.record(e, a.scalar(types.Int))
	case *ast.FloatLit:
		return a.record(e, a.scalar(types.Float))
	case *ast.BoolLit:
		return a.record(e, a.scalar(types.Bool))
	case *ast.StrLit:
		return a.record(e, a.scalar(types.Str))
	case *ast.Var:
		ty, ok := scope.Lookup(n.Name)
		if !ok {
			a.errorf(n.Sp, "unknown name %q", n.Name)
			ty = a.fresh()
		}
		return a.record(e, ty)
	case *ast.ArrayLit:
		return a.record(e, a.inferArray(n, scope))
	case *ast.RecordLit:
		return a.record(e, a.inferRecord(n, scope))
	case *ast.Unary:
		return a.record(e, a.inferUnary(n, scope))
	case *ast.Binary:
		return a.record(e, a.inferBinary(n, scope))
	case *ast.If:
		return a.record(e, a.inferIf(n, scope))
	case *ast.Call:
		return a.record(e, a.inferCall(n, scope))
	case *ast.Index:
		return a.record(e, a.inferIndex(n, scope))
	case *ast.Field:
		return a.record(e, a.inferField(n, scope))
	case *ast.Where:
		return a.record(e, a.inferWhere(n, scope))
	default:
		panic(fmt.Sprintf("analyzer: unhandled expression %T", e))
	}
}

func (a *analyzer) inferArray(n *ast.ArrayLit, scope *Scope) types.Ty {
	elem := a.fresh()
	for _, el := range n.Elems {
		a.unify(elem, a.infer(el, scope), el.Span())
	}
	return types.NewArray(a.tb, a.resolve(elem))
}

func (a *analyzer) inferRecord(n *ast.RecordLit, scope *Scope) types.Ty {
	seen := make(map[string]bool, len(n.Fields))
	var fields []types.Field
	for _, f := range n.Fields {
		ty := a.infer(f.Value, scope)
		if seen[f.Name] {
			a.errorf(f.Sp, "duplicate record field %q", f.Name)
			continue
		}
		seen[f.Name] = true
		fields = append(fields, types.Field{Name: types.Ident(f.Name), Type: ty})
	}
	return types.NewRecord(a.tb, fields)
}

func (a *analyzer) inferUnary(n *ast.Unary, scope *Scope) types.Ty {
	operand := a.infer(n.Operand, scope)
	switch n.Op {
	case ast.Not:
		a.unify(a.scalar(types.Bool), operand, n.Operand.Span())
		return a.scalar(types.Bool)
	case ast.Neg:
		rt := a.resolve(operand)
		if !HasInstance(Numeric, rt) {
			a.errorf(n.Sp, "operator - needs a Numeric operand, got %s", rt)
			return a.fresh()
		}
		return rt
	default:
		panic("analyzer: unhandled unary operator")
	}
}

func (a *analyzer) inferBinary(n *ast.Binary, scope *Scope) types.Ty {
	left := a.infer(n.Left, scope)
	right := a.infer(n.Right, scope)

	switch {
	case n.Op.Logical():
		a.unify(a.scalar(types.Bool), left, n.Left.Span())
		a.unify(a.scalar(types.Bool), right, n.Right.Span())
		return a.scalar(types.Bool)

	case n.Op == ast.Eq || n.Op == ast.Ne:
		if a.unify(left, right, n.Sp) {
			rt := a.resolve(left)
			if !HasInstance(Hashable, rt) {
				a.errorf(n.Sp, "values of type %s cannot be compared", rt)
			}
		}
		return a.scalar(types.Bool)

	case n.Op.Comparison():
		if a.unify(left, right, n.Sp) {
			rt := a.resolve(left)
			if !HasInstance(Ord, rt) {
				a.errorf(n.Sp, "operator %s needs Ord operands, got %s", n.Op, rt)
			}
		}
		return a.scalar(types.Bool)

	case n.Op == ast.Mod:
		a.unify(a.scalar(types.Int), left, n.Left.Span())
		a.unify(a.scalar(types.Int), right, n.Right.Span())
		return a.scalar(types.Int)

	default: // Add, Sub, Mul, Div
		if !a.unify(left, right, n.Sp) {
			return a.fresh()
		}
		rt := a.resolve(left)
		if _, isVar := rt.Kind().(types.TVar); isVar {
			// Both sides still unknown; default the overload to Int.
			a.unify(rt, a.scalar(types.Int), n.Sp)
			return a.scalar(types.Int)
		}
		if !HasInstance(Numeric, rt) {
			a.errorf(n.Sp, "operator %s needs Numeric operands, got %s", n.Op, rt)
			return a.fresh()
		}
		return rt
	}
}

func (a *analyzer) inferIf(n *ast.If, scope *Scope) types.Ty {
	cond := a.infer(n.Cond, scope)
	a.unify(a.scalar(types.Bool), cond, n.Cond.Span())
	thenTy := a.infer(n.Then, scope)
	elseTy := a.infer(n.Else, scope)
	if !a.unify(thenTy, elseTy, n.Sp) {
		return a.fresh()
	}
	return a.resolve(thenTy)
}

func (a *analyzer) inferCall(n *ast.Call, scope *Scope) types.Ty {
	fnTy := a.resolve(a.infer(n.Fn, scope))
	for _, arg := range n.Args {
		a.infer(arg, scope)
	}
	fn, ok := fnTy.Kind().(types.TFunc)
	if !ok {
		if _, isVar := fnTy.Kind().(types.TVar); !isVar {
			a.errorf(n.Fn.Span(), "cannot call a value of type %s", fnTy)
		}
		return a.fresh()
	}
	if len(n.Args) != len(fn.Params) {
		a.errorf(n.Sp, "wrong number of arguments: expected %d, got %d", len(fn.Params), len(n.Args))
		return fn.Ret
	}
	for i, arg := range n.Args {
		a.unify(fn.Params[i], a.exprs[arg], arg.Span())
	}
	return fn.Ret
}

func (a *analyzer) inferIndex(n *ast.Index, scope *Scope) types.Ty {
	target := a.resolve(a.infer(n.Target, scope))
	idx := a.infer(n.Idx, scope)
	switch k := target.Kind().(type) {
	case types.TArray:
		a.unify(a.scalar(types.Int), idx, n.Idx.Span())
		return k.Elem
	case types.TMap:
		a.unify(k.Key, idx, n.Idx.Span())
		return k.Value
	case types.TVar:
		a.helpf(n.Sp, "build the collection before indexing it",
			"cannot index a value whose type is not yet known")
		return a.fresh()
	default:
		a.errorf(n.Sp, "type %s is not Indexable", target)
		return a.fresh()
	}
}

func (a *analyzer) inferField(n *ast.Field, scope *Scope) types.Ty {
	target := a.resolve(a.infer(n.Target, scope))
	rec, ok := target.Kind().(types.TRecord)
	if !ok {
		a.errorf(n.Sp, "type %s has no fields", target)
		return a.fresh()
	}
	for _, f := range rec.Fields {
		if string(f.Name) == n.Name {
			return f.Type
		}
	}
	a.errorf(n.Sp, "type %s has no field %q", target, n.Name)
	return a.fresh()
}

func (a *analyzer) inferWhere(n *ast.Where, scope *Scope) types.Ty {
	inner := scope
	seen := make(map[string]bool, len(n.Bindings))
	for _, b := range n.Bindings {
		if seen[b.Name] {
			a.errorf(b.Sp, "duplicate binding %q in where block", b.Name)
		}
		seen[b.Name] = true
		// Later bindings see earlier ones, not themselves.
		inner = inner.Bind(b.Name, a.infer(b.Value, inner))
	}
	return a.infer(n.Body, inner)
}
