package types

// Structural hashing and equality shared by all builders.
//
// Hashes are computed once at construction, bottom-up: a node's hash mixes
// its variant tag and payload with the cached hashes of its direct
// children, so hashing never re-walks a built tree. The same hash serves
// both builders, since equal pointers imply equal hashes.

const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func hashByte(h uint64, b byte) uint64 {
	return (h ^ uint64(b)) * fnvPrime
}

func hashUint64(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = hashByte(h, byte(v>>(8*i)))
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = hashByte(h, s[i])
	}
	// Terminator so concatenations of adjacent strings cannot collide.
	return hashByte(h, 0xff)
}

func computeHash(kind Kind) uint64 {
	h := fnvOffset
	switch k := kind.(type) {
	case TVar:
		h = hashByte(h, 1)
		h = hashUint64(h, uint64(k.ID))
	case TScalar:
		h = hashByte(h, 2)
		h = hashUint64(h, uint64(k.Scalar))
	case TArray:
		h = hashByte(h, 3)
		h = hashUint64(h, k.Elem.Hash())
	case TMap:
		h = hashByte(h, 4)
		h = hashUint64(h, k.Key.Hash())
		h = hashUint64(h, k.Value.Hash())
	case TRecord:
		h = hashByte(h, 5)
		for _, f := range k.Fields {
			h = hashString(h, string(f.Name))
			h = hashUint64(h, f.Type.Hash())
		}
	case TFunc:
		h = hashByte(h, 6)
		for _, p := range k.Params {
			h = hashUint64(h, p.Hash())
		}
		h = hashByte(h, 0)
		h = hashUint64(h, k.Ret.Hash())
	case TSymbol:
		h = hashByte(h, 7)
		for _, t := range k.Tags {
			h = hashString(h, string(t))
		}
	default:
		panic("types: unknown kind in computeHash")
	}
	return h
}

// shallowEqual compares two kinds assuming their children were allocated
// through the same interning builder, so child handles can be compared by
// identity. This is the probe used by the arena's intern table.
func shallowEqual(a, b Kind) bool {
	switch ak := a.(type) {
	case TVar:
		bk, ok := b.(TVar)
		return ok && ak.ID == bk.ID
	case TScalar:
		bk, ok := b.(TScalar)
		return ok && ak.Scalar == bk.Scalar
	case TArray:
		bk, ok := b.(TArray)
		return ok && ak.Elem == bk.Elem
	case TMap:
		bk, ok := b.(TMap)
		return ok && ak.Key == bk.Key && ak.Value == bk.Value
	case TRecord:
		bk, ok := b.(TRecord)
		if !ok || len(ak.Fields) != len(bk.Fields) {
			return false
		}
		for i := range ak.Fields {
			if ak.Fields[i].Name != bk.Fields[i].Name ||
				ak.Fields[i].Type != bk.Fields[i].Type {
				return false
			}
		}
		return true
	case TFunc:
		bk, ok := b.(TFunc)
		if !ok || len(ak.Params) != len(bk.Params) || ak.Ret != bk.Ret {
			return false
		}
		for i := range ak.Params {
			if ak.Params[i] != bk.Params[i] {
				return false
			}
		}
		return true
	case TSymbol:
		bk, ok := b.(TSymbol)
		if !ok || len(ak.Tags) != len(bk.Tags) {
			return false
		}
		for i := range ak.Tags {
			if ak.Tags[i] != bk.Tags[i] {
				return false
			}
		}
		return true
	default:
		panic("types: unknown kind in shallowEqual")
	}
}

// deepEqual compares two types structurally, regardless of which builder
// produced them. The cached hash rejects most mismatches without a walk.
func deepEqual(a, b Ty) bool {
	if a == b {
		return true
	}
	if a.Hash() != b.Hash() || a.Flags() != b.Flags() {
		return false
	}
	switch ak := a.Kind().(type) {
	case TVar:
		bk, ok := b.Kind().(TVar)
		return ok && ak.ID == bk.ID
	case TScalar:
		bk, ok := b.Kind().(TScalar)
		return ok && ak.Scalar == bk.Scalar
	case TArray:
		bk, ok := b.Kind().(TArray)
		return ok && deepEqual(ak.Elem, bk.Elem)
	case TMap:
		bk, ok := b.Kind().(TMap)
		return ok && deepEqual(ak.Key, bk.Key) && deepEqual(ak.Value, bk.Value)
	case TRecord:
		bk, ok := b.Kind().(TRecord)
		if !ok || len(ak.Fields) != len(bk.Fields) {
			return false
		}
		for i := range ak.Fields {
			if ak.Fields[i].Name != bk.Fields[i].Name ||
				!deepEqual(ak.Fields[i].Type, bk.Fields[i].Type) {
				return false
			}
		}
		return true
	case TFunc:
		bk, ok := b.Kind().(TFunc)
		if !ok || len(ak.Params) != len(bk.Params) {
			return false
		}
		for i := range ak.Params {
			if !deepEqual(ak.Params[i], bk.Params[i]) {
				return false
			}
		}
		return deepEqual(ak.Ret, bk.Ret)
	case TSymbol:
		bk, ok := b.Kind().(TSymbol)
		if !ok || len(ak.Tags) != len(bk.Tags) {
			return false
		}
		for i := range ak.Tags {
			if ak.Tags[i] != bk.Tags[i] {
				return false
			}
		}
		return true
	default:
		panic("types: unknown kind in deepEqual")
	}
}
