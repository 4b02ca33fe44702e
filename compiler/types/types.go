package types

// The Kavo type algebra is a small structural system: scalars, arrays,
// maps, records, functions, symbols, and unification variables. Types are
// immutable once constructed and are always allocated through a Builder,
// which owns the storage strategy (arena interning or plain heap). The
// algebra itself carries no allocation policy; everything below is shared
// by every builder.
type Kind interface {
	// Marker that seals the set of kinds to this package.
	isKind()
}

// Scalar enumerates the primitive types. The declaration order is the
// canonical ordering used for comparisons: Bool < Int < Float < Str < Bytes.
type Scalar int

const (
	Bool Scalar = iota
	Int
	Float
	Str
	Bytes
)

func (s Scalar) String() string {
	switch s {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Str:
		return "Str"
	case Bytes:
		return "Bytes"
	default:
		return "Scalar(?)"
	}
}

// Flags is a bitset of structural properties cached on every node. Flags
// are computed exactly once, when a node is allocated, by folding the
// already-computed flags of the node's direct children. They are never
// recomputed by re-walking a built node.
type Flags uint16

const (
	// HasTypeVars is set when the type is a variable or contains one.
	HasTypeVars Flags = 1 << iota
)

// Ident is a canonical identifier. Arena builders intern the backing
// string so that equal identifiers share storage; comparison is always
// plain ==.
type Ident string

// Field is a named record field.
type Field struct {
	Name Ident
	Type Ty
}

// TVar is a unification placeholder, compared by numeric identity only.
type TVar struct {
	ID uint16
}

// TScalar wraps one of the five primitive scalars.
type TScalar struct {
	Scalar Scalar
}

// TArray is an array type with a single element type.
type TArray struct {
	Elem Ty
}

// TMap is a map type with key and value types.
type TMap struct {
	Key   Ty
	Value Ty
}

// TRecord is a record with named fields.
//
// Invariant: fields are sorted by name with no duplicates. The Record
// constructor establishes this, which is what makes two records built from
// the same name/type pairs compare equal regardless of declaration order.
type TRecord struct {
	Fields []Field
}

// TFunc is a function type with parameter types and a return type.
type TFunc struct {
	Params []Ty
	Ret    Ty
}

// TSymbol is a closed union of labels, e.g. Symbol["error", "ok"].
//
// Invariant: tags are sorted and deduplicated.
type TSymbol struct {
	Tags []Ident
}

func (TVar) isKind()    {}
func (TScalar) isKind() {}
func (TArray) isKind()  {}
func (TMap) isKind()    {}
func (TRecord) isKind() {}
func (TFunc) isKind()   {}
func (TSymbol) isKind() {}

// Node pairs a Kind with its cached flags and structural hash. Nodes are
// only ever created by builders; a Ty is a handle to a builder-owned Node.
type Node struct {
	flags Flags
	hash  uint64
	kind  Kind
}

// Ty is a lightweight handle to a builder-owned type node. Equality
// semantics depend on the builder that produced it: arena handles compare
// by identity, heap handles structurally (see Builder.TyEqual).
type Ty = *Node

func (n *Node) Kind() Kind {
	return n.kind
}

func (n *Node) Flags() Flags {
	return n.flags
}

// Hash returns the structural hash computed at construction time.
func (n *Node) Hash() uint64 {
	return n.hash
}

func newNode(kind Kind) Node {
	return Node{
		flags: computeFlags(kind),
		hash:  computeHash(kind),
		kind:  kind,
	}
}

// computeFlags derives a node's flags from its kind and the cached flags
// of its direct children. Children are never re-walked; their flags were
// computed when they were allocated.
//
// Every Kind variant must be handled here. A missing variant would yield
// an under-set flag bitset, which downstream fast paths (e.g. skipping
// substitution when HasTypeVars is clear) would silently trust.
func computeFlags(kind Kind) Flags {
	switch k := kind.(type) {
	case TVar:
		return HasTypeVars
	case TScalar:
		return 0
	case TArray:
		return k.Elem.Flags()
	case TMap:
		return k.Key.Flags() | k.Value.Flags()
	case TRecord:
		var f Flags
		for _, field := range k.Fields {
			f |= field.Type.Flags()
		}
		return f
	case TFunc:
		var f Flags
		for _, p := range k.Params {
			f |= p.Flags()
		}
		return f | k.Ret.Flags()
	case TSymbol:
		// Symbols hold only labels, never nested types.
		return 0
	default:
		panic("types: unknown kind in computeFlags")
	}
}

// children returns the structural child types of a kind in definition
// order: Array yields [elem], Map [key, value], Record the field types,
// Function the params followed by the return type. Leaves yield nil.
func children(kind Kind) []Ty {
	switch k := kind.(type) {
	case TVar, TScalar, TSymbol:
		return nil
	case TArray:
		return []Ty{k.Elem}
	case TMap:
		return []Ty{k.Key, k.Value}
	case TRecord:
		out := make([]Ty, len(k.Fields))
		for i, f := range k.Fields {
			out[i] = f.Type
		}
		return out
	case TFunc:
		out := make([]Ty, 0, len(k.Params)+1)
		out = append(out, k.Params...)
		return append(out, k.Ret)
	default:
		panic("types: unknown kind in children")
	}
}

// Children exposes the structural children of a type. The returned slice
// is freshly allocated; mutating it does not affect the type.
func Children(ty Ty) []Ty {
	return children(ty.Kind())
}

// rebuild reconstructs a kind in terms of new children, keeping the
// non-type payload (scalar, var id, field names, symbol tags) from the
// template. Names and tags are re-allocated through dst so the result has
// no reference into the template's builder. The children slice must have
// exactly as many entries as the template has structural children.
func rebuild(dst Builder, template Kind, newChildren []Ty) Kind {
	switch k := template.(type) {
	case TVar:
		return TVar{ID: k.ID}
	case TScalar:
		return TScalar{Scalar: k.Scalar}
	case TSymbol:
		tags := make([]Ident, len(k.Tags))
		for i, t := range k.Tags {
			tags[i] = dst.AllocIdent(string(t))
		}
		return TSymbol{Tags: dst.AllocIdentList(tags)}
	case TArray:
		return TArray{Elem: newChildren[0]}
	case TMap:
		return TMap{Key: newChildren[0], Value: newChildren[1]}
	case TRecord:
		fields := make([]Field, len(k.Fields))
		for i, f := range k.Fields {
			fields[i] = Field{
				Name: dst.AllocIdent(string(f.Name)),
				Type: newChildren[i],
			}
		}
		return TRecord{Fields: dst.AllocFieldList(fields)}
	case TFunc:
		if len(newChildren) != len(k.Params)+1 {
			panic("types: function child count mismatch in rebuild")
		}
		// Children order is params first, return type last.
		params := dst.AllocTyList(newChildren[:len(newChildren)-1])
		return TFunc{Params: params, Ret: newChildren[len(newChildren)-1]}
	default:
		panic("types: unknown kind in rebuild")
	}
}
