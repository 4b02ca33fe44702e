package types

// Heap is the non-interning builder. Every Alloc produces a fresh node
// on the ordinary Go heap with no deduplication, so equality is always
// structural. Nodes live as long as any holder retains their handle;
// cycles are structurally impossible (the algebra is a tree), so plain
// garbage collection suffices.
//
// Useful for short-lived or test contexts where interning overhead is not
// justified, or where types must compare by contents regardless of
// provenance.
type Heap struct {
	// Nothing to own: the Go heap is the storage. The padding byte keeps
	// the struct non-zero-sized so distinct heaps get distinct addresses
	// and builders compare by identity.
	_ byte
}

// NewHeap creates a non-interning builder.
func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) Alloc(kind Kind) Ty {
	n := newNode(kind)
	return &n
}

func (h *Heap) AllocIdent(name string) Ident {
	return Ident(name)
}

func (h *Heap) AllocTyList(tys []Ty) []Ty {
	out := make([]Ty, len(tys))
	copy(out, tys)
	return out
}

func (h *Heap) AllocIdentList(ids []Ident) []Ident {
	out := make([]Ident, len(ids))
	copy(out, ids)
	return out
}

func (h *Heap) AllocFieldList(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// TyEqual is deep structural equality; no deduplication happened at
// construction, so handle identity means nothing here.
func (h *Heap) TyEqual(x, y Ty) bool {
	return deepEqual(x, y)
}

func (h *Heap) TyHash(ty Ty) uint64 {
	return ty.Hash()
}
