package types

// Arena is the interning builder. Nodes are allocated in fixed-size
// chunks and deduplicated through a structural intern table scoped to the
// arena's lifetime, so every structurally distinct type built through one
// arena gets exactly one handle. This is what lets downstream code use
// handle identity in place of deep structural comparison.
//
// An arena owns everything allocated through it; dropping the arena drops
// all of its types together. A single arena must not be mutated from more
// than one goroutine; independent arenas share no state.
type Arena struct {
	chunk  []Node
	nodes  map[uint64][]Ty
	idents map[string]Ident
}

const arenaChunkSize = 256

// NewArena creates an empty interning arena.
func NewArena() *Arena {
	return &Arena{
		nodes:  make(map[uint64][]Ty, 64),
		idents: make(map[string]Ident, 64),
	}
}

func (a *Arena) allocNode(n Node) Ty {
	if len(a.chunk) == cap(a.chunk) {
		a.chunk = make([]Node, 0, arenaChunkSize)
	}
	a.chunk = append(a.chunk, n)
	return &a.chunk[len(a.chunk)-1]
}

// Alloc interns kind: if a structurally equal node already exists in this
// arena its handle is returned, collapsing equality to identity.
func (a *Arena) Alloc(kind Kind) Ty {
	n := newNode(kind)
	for _, cand := range a.nodes[n.hash] {
		// Children are interned, so identity comparison of child
		// handles decides structural equality here.
		if shallowEqual(kind, cand.Kind()) {
			return cand
		}
	}
	ty := a.allocNode(n)
	a.nodes[n.hash] = append(a.nodes[n.hash], ty)
	return ty
}

// AllocIdent interns the identifier so equal names share backing storage.
func (a *Arena) AllocIdent(name string) Ident {
	if id, ok := a.idents[name]; ok {
		return id
	}
	id := Ident(name)
	a.idents[name] = id
	return id
}

func (a *Arena) AllocTyList(tys []Ty) []Ty {
	out := make([]Ty, len(tys))
	copy(out, tys)
	return out
}

func (a *Arena) AllocIdentList(ids []Ident) []Ident {
	out := make([]Ident, len(ids))
	copy(out, ids)
	return out
}

func (a *Arena) AllocFieldList(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// TyEqual is handle identity: interning guarantees that structurally
// equal types from this arena share a handle.
func (a *Arena) TyEqual(x, y Ty) bool {
	return x == y
}

func (a *Arena) TyHash(ty Ty) uint64 {
	return ty.Hash()
}
