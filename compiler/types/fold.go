package types

// Bottom-up fold over the type algebra, driven by an explicit work stack.
//
// Type trees mirror user expressions and can nest arbitrarily deeply, so
// the drive loop never recurses on the native call stack: it keeps a task
// stack of visit/combine entries and a side stack of intermediate
// results. A node's children are pushed in reverse so they pop — and are
// therefore visited — in original left-to-right order.

type stepKind int

const (
	stepRecurse stepKind = iota
	stepDone
	stepReplace
)

// Step is the control-flow decision returned by a Folder's Visit hook.
type Step[T any] struct {
	kind    stepKind
	out     T
	replace Ty
}

// Recurse continues into the node's children; Combine runs afterwards.
func Recurse[T any]() Step[T] {
	return Step[T]{kind: stepRecurse}
}

// Done skips the node's children and uses out as the node's result.
func Done[T any](out T) Step[T] {
	return Step[T]{kind: stepDone, out: out}
}

// Replace visits ty in place of the current node. This is how
// substitution swaps a type variable for its binding and keeps folding.
func Replace[T any](ty Ty) Step[T] {
	return Step[T]{kind: stepReplace, replace: ty}
}

// Folder is a bottom-up transformation of a type tree into values of
// type T: a new type in some builder, a collected set, or anything else.
type Folder[T any] interface {
	// Visit is called before a node's children are processed.
	Visit(src Builder, ty Ty) (Step[T], error)

	// Combine is called after all children produced results, in
	// definition order: Array [elem]; Map [key, value]; Record the field
	// results; Function the param results then the return result; leaves
	// get an empty slice. The slice is a view into the drive loop's
	// result stack and must not be retained.
	Combine(src Builder, ty Ty, children []T) (T, error)
}

type foldTask struct {
	ty      Ty
	combine bool
	arity   int
}

// Fold drives a Folder over root. It terminates when the task stack is
// empty and the result stack holds exactly one value; anything else is a
// bug in a Folder implementation and panics.
func Fold[T any](src Builder, root Ty, f Folder[T]) (T, error) {
	var zero T
	stack := []foldTask{{ty: root}}
	results := make([]T, 0, 8)

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if task.combine {
			start := len(results) - task.arity
			if start < 0 {
				panic("types: fold result stack underflow")
			}
			out, err := f.Combine(src, task.ty, results[start:])
			if err != nil {
				return zero, err
			}
			results = results[:start]
			results = append(results, out)
			continue
		}

		step, err := f.Visit(src, task.ty)
		if err != nil {
			return zero, err
		}
		switch step.kind {
		case stepDone:
			results = append(results, step.out)
		case stepReplace:
			stack = append(stack, foldTask{ty: step.replace})
		case stepRecurse:
			kids := children(task.ty.Kind())
			stack = append(stack, foldTask{ty: task.ty, combine: true, arity: len(kids)})
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, foldTask{ty: kids[i]})
			}
		}
	}

	if len(results) != 1 {
		panic("types: fold finished without exactly one result")
	}
	return results[0], nil
}

// TypeFolder is the common special case of a fold that produces a type,
// possibly in a different builder. Returning Recurse rebuilds the node
// from its folded children in dst; Done and Replace work as in Folder.
type TypeFolder interface {
	FoldTy(src, dst Builder, ty Ty) Step[Ty]
}

type typeFolderAdapter struct {
	dst Builder
	f   TypeFolder
}

func (a typeFolderAdapter) Visit(src Builder, ty Ty) (Step[Ty], error) {
	return a.f.FoldTy(src, a.dst, ty), nil
}

func (a typeFolderAdapter) Combine(src Builder, ty Ty, kids []Ty) (Ty, error) {
	return a.dst.Alloc(rebuild(a.dst, ty.Kind(), kids)), nil
}

// FoldType drives a TypeFolder over root, producing a type owned by dst.
func FoldType(src, dst Builder, root Ty, f TypeFolder) Ty {
	out, err := Fold[Ty](src, root, typeFolderAdapter{dst: dst, f: f})
	if err != nil {
		// The adapter never produces an error.
		panic("types: type fold failed: " + err.Error())
	}
	return out
}

type identityFolder struct{}

func (identityFolder) FoldTy(src, dst Builder, ty Ty) Step[Ty] {
	return Recurse[Ty]()
}

// CopyType reconstructs ty inside dst. The copy shares no storage with
// the source builder: identifiers are re-allocated and every node is
// rebuilt, so the source builder may be dropped afterwards without
// invalidating the result.
func CopyType(dst Builder, ty Ty) Ty {
	return FoldType(dst, dst, ty, identityFolder{})
}
