package runtime

import (
	"fortio.org/safecast"

	"github.com/kavolang/kavo/compiler/types"
)

// Arena packs values into flat word storage. Scalars are stored inline
// in the handle itself. Arrays are runs in a shared slab: the handle is
// the slab index of a length prefix, followed by the element words.
// Strings and functions are indices into side tables, which keeps the
// slab free of collector-visible pointers.
//
// Nothing allocated by an arena is ever freed individually; the whole
// arena is dropped at once when the evaluation that owns it finishes.
type Arena struct {
	tb    types.Builder
	words []Word
	strs  []string
	funcs []*Function[Word]
}

// NewArena creates an empty value arena backed by tb.
func NewArena(tb types.Builder) *Arena {
	// Slab index zero stays reserved so the zero Word never aliases a
	// live array run.
	return &Arena{tb: tb, words: make([]Word, 1, 256)}
}

func (a *Arena) Types() types.Builder {
	return a.tb
}

func (a *Arena) AllocInt(v int64) Word {
	return WordFromInt(v)
}

func (a *Arena) AllocBool(v bool) Word {
	return WordFromBool(v)
}

func (a *Arena) AllocFloat(v float64) Word {
	return WordFromFloat(v)
}

func (a *Arena) AllocStr(s string) Word {
	a.strs = append(a.strs, s)
	return Word(len(a.strs) - 1)
}

func (a *Arena) AllocArray(elems []Word) Word {
	off := Word(len(a.words))
	a.words = append(a.words, Word(len(elems)))
	a.words = append(a.words, elems...)
	return off
}

func (a *Arena) AllocFunc(fn *Function[Word]) Word {
	a.funcs = append(a.funcs, fn)
	return Word(len(a.funcs) - 1)
}

func (a *Arena) Int(h Word) int64 {
	return h.Int()
}

func (a *Arena) Bool(h Word) bool {
	return h.Bool()
}

func (a *Arena) Float(h Word) float64 {
	return h.Float()
}

func (a *Arena) Str(h Word) string {
	return a.strs[a.index(h)]
}

func (a *Arena) ArrayLen(h Word) int {
	return a.index(a.words[a.index(h)])
}

func (a *Arena) ArrayAt(h Word, i int) Word {
	return a.words[a.index(h)+1+i]
}

func (a *Arena) Func(h Word) *Function[Word] {
	return a.funcs[a.index(h)]
}

func (a *Arena) index(w Word) int {
	i, err := safecast.Conv[int](uint64(w))
	if err != nil {
		panic("runtime: value handle out of range")
	}
	return i
}
