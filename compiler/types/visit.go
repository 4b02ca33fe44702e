package types

// Visitor is a read-only, top-down traversal that threads a caller
// context through every node it reaches. Implementations accumulate into
// ctx (counting occurrences, collecting free variables) and never rebuild
// the tree; use a Folder for transformations.
type Visitor[C any] interface {
	// Visit processes ty. Returning false prunes the node's children.
	Visit(b Builder, ty Ty, ctx *C) bool
}

// Visit walks root top-down, left-to-right, calling v on every node it
// does not prune. Like Fold, the traversal runs on an explicit heap stack
// so arbitrarily deep types cannot exhaust the call stack.
func Visit[C any](b Builder, root Ty, v Visitor[C], ctx *C) {
	stack := []Ty{root}
	for len(stack) > 0 {
		ty := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !v.Visit(b, ty, ctx) {
			continue
		}
		kids := children(ty.Kind())
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// VisitFunc adapts a plain function to the Visitor capability.
type VisitFunc[C any] func(b Builder, ty Ty, ctx *C) bool

func (f VisitFunc[C]) Visit(b Builder, ty Ty, ctx *C) bool {
	return f(b, ty, ctx)
}
