package analyzer

import (
	"github.com/kavolang/kavo/compiler/lexer"
	"github.com/kavolang/kavo/compiler/types"
)

// resolve follows substitution bindings until the head of ty is not a
// bound variable. Only the head is resolved; children may still contain
// bound variables until applySubst runs.
func (a *analyzer) resolve(ty types.Ty) types.Ty {
	for {
		v, ok := ty.Kind().(types.TVar)
		if !ok {
			return ty
		}
		bound, ok := a.subst[v.ID]
		if !ok {
			return ty
		}
		ty = bound
	}
}

// unify makes want and got equal under the substitution, reporting a
// diagnostic at span on failure. The return value tells callers whether
// follow-up checks (type classes) are worth running.
func (a *analyzer) unify(want, got types.Ty, span lexer.Span) bool {
	want = a.resolve(want)
	got = a.resolve(got)

	if wv, ok := want.Kind().(types.TVar); ok {
		if gv, ok := got.Kind().(types.TVar); ok && gv.ID == wv.ID {
			return true
		}
		if a.occurs(wv.ID, got) {
			a.errorf(span, "cannot construct the infinite type ?%d = %s", wv.ID, got)
			return false
		}
		a.subst[wv.ID] = got
		return true
	}
	if gv, ok := got.Kind().(types.TVar); ok {
		if a.occurs(gv.ID, want) {
			a.errorf(span, "cannot construct the infinite type ?%d = %s", gv.ID, want)
			return false
		}
		a.subst[gv.ID] = want
		return true
	}

	switch wk := want.Kind().(type) {
	case types.TScalar:
		if gk, ok := got.Kind().(types.TScalar); ok && gk.Scalar == wk.Scalar {
			return true
		}
	case types.TArray:
		if gk, ok := got.Kind().(types.TArray); ok {
			return a.unify(wk.Elem, gk.Elem, span)
		}
	case types.TMap:
		if gk, ok := got.Kind().(types.TMap); ok {
			okKey := a.unify(wk.Key, gk.Key, span)
			okVal := a.unify(wk.Value, gk.Value, span)
			return okKey && okVal
		}
	case types.TRecord:
		if gk, ok := got.Kind().(types.TRecord); ok && len(gk.Fields) == len(wk.Fields) {
			all := true
			for i := range wk.Fields {
				// Fields are canonically sorted, so positions line up.
				if wk.Fields[i].Name != gk.Fields[i].Name {
					all = false
					break
				}
				if !a.unify(wk.Fields[i].Type, gk.Fields[i].Type, span) {
					all = false
				}
			}
			if all {
				return true
			}
		}
	case types.TFunc:
		if gk, ok := got.Kind().(types.TFunc); ok && len(gk.Params) == len(wk.Params) {
			all := true
			for i := range wk.Params {
				if !a.unify(wk.Params[i], gk.Params[i], span) {
					all = false
				}
			}
			if !a.unify(wk.Ret, gk.Ret, span) {
				all = false
			}
			if all {
				return true
			}
		}
	case types.TSymbol:
		if gk, ok := got.Kind().(types.TSymbol); ok && len(gk.Tags) == len(wk.Tags) {
			same := true
			for i := range wk.Tags {
				if wk.Tags[i] != gk.Tags[i] {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}

	a.errorf(span, "type mismatch: expected %s, got %s", want, got)
	return false
}

// occurs reports whether variable id appears in ty after resolution.
func (a *analyzer) occurs(id uint16, ty types.Ty) bool {
	if ty.Flags()&types.HasTypeVars == 0 {
		return false
	}
	if v, ok := ty.Kind().(types.TVar); ok {
		if v.ID == id {
			return true
		}
		if bound, ok := a.subst[v.ID]; ok {
			return a.occurs(id, bound)
		}
		return false
	}
	for _, child := range types.Children(ty) {
		if a.occurs(id, child) {
			return true
		}
	}
	return false
}

type substFolder struct {
	subst map[uint16]types.Ty
}

func (s substFolder) FoldTy(src, dst types.Builder, ty types.Ty) types.Step[types.Ty] {
	if ty.Flags()&types.HasTypeVars == 0 {
		// src and dst are the same builder here, so reuse is safe.
		return types.Done[types.Ty](ty)
	}
	if v, ok := ty.Kind().(types.TVar); ok {
		if bound, ok := s.subst[v.ID]; ok {
			return types.Replace[types.Ty](bound)
		}
	}
	return types.Recurse[types.Ty]()
}

// applySubst rewrites ty with every bound variable replaced by its
// binding, transitively.
func (a *analyzer) applySubst(ty types.Ty) types.Ty {
	if ty.Flags()&types.HasTypeVars == 0 {
		return ty
	}
	return types.FoldType(a.tb, a.tb, ty, substFolder{subst: a.subst})
}
