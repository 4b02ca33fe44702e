package types

import (
	"golang.org/x/exp/slices"
)

// Builder is the allocation capability for the type algebra. A builder
// owns the storage for individual nodes, for identifiers, and for the
// three list shapes used by compound kinds. It also defines the equality
// semantics of the handles it produces.
//
// Builder values are compared by identity: both implementations are
// pointers, and handles from one builder must never be treated as handles
// from another.
type Builder interface {
	// Alloc allocates (or, for interning builders, reuses) a node for kind.
	// Compound kinds must only reference children allocated through the
	// same builder.
	Alloc(kind Kind) Ty

	// AllocIdent returns the canonical Ident for name.
	AllocIdent(name string) Ident

	// AllocTyList takes ownership of a type list.
	AllocTyList(tys []Ty) []Ty

	// AllocIdentList takes ownership of an identifier list.
	AllocIdentList(ids []Ident) []Ident

	// AllocFieldList takes ownership of a field list.
	AllocFieldList(fields []Field) []Field

	// TyEqual reports whether two handles denote equal types under this
	// builder's semantics: identity for interning builders, structural
	// equality otherwise.
	TyEqual(a, b Ty) bool

	// TyHash returns a hash consistent with TyEqual.
	TyHash(ty Ty) uint64
}

// NewVar allocates a unification variable.
func NewVar(b Builder, id uint16) Ty {
	return b.Alloc(TVar{ID: id})
}

// NewScalar allocates a scalar type.
func NewScalar(b Builder, s Scalar) Ty {
	return b.Alloc(TScalar{Scalar: s})
}

// NewArray allocates an array type.
func NewArray(b Builder, elem Ty) Ty {
	return b.Alloc(TArray{Elem: elem})
}

// NewMap allocates a map type.
func NewMap(b Builder, key, value Ty) Ty {
	return b.Alloc(TMap{Key: key, Value: value})
}

// NewFunc allocates a function type.
func NewFunc(b Builder, params []Ty, ret Ty) Ty {
	return b.Alloc(TFunc{Params: b.AllocTyList(params), Ret: ret})
}

// NewRecord allocates a record type, canonicalizing the field order.
// Fields may be given in any order; they are sorted by name so that
// records built from the same name/type pairs are equal regardless of
// declaration order. Duplicate field names are a construction contract
// violation.
func NewRecord(b Builder, fields []Field) Ty {
	sorted := make([]Field, len(fields))
	for i, f := range fields {
		sorted[i] = Field{Name: b.AllocIdent(string(f.Name)), Type: f.Type}
	}
	slices.SortFunc(sorted, func(x, y Field) bool {
		return x.Name < y.Name
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name == sorted[i-1].Name {
			panic("types: duplicate record field " + string(sorted[i].Name))
		}
	}
	return b.Alloc(TRecord{Fields: b.AllocFieldList(sorted)})
}

// NewSymbol allocates a symbol type, sorting and deduplicating the tags.
func NewSymbol(b Builder, tags []string) Ty {
	names := slices.Clone(tags)
	slices.Sort(names)
	names = slices.Compact(names)
	ids := make([]Ident, len(names))
	for i, n := range names {
		ids[i] = b.AllocIdent(n)
	}
	return b.Alloc(TSymbol{Tags: b.AllocIdentList(ids)})
}
