package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/runtime"
)

// Format renders a value in surface syntax: 42, 2.5, "s", [1, 2],
// {x: 1}. Functions render as <fn name>.
func Format(v runtime.Value[runtime.Word]) string {
	switch k := v.Ty().Kind().(type) {
	case types.TScalar:
		switch k.Scalar {
		case types.Int:
			n, _ := v.AsInt()
			return strconv.FormatInt(n, 10)
		case types.Bool:
			b, _ := v.AsBool()
			return strconv.FormatBool(b)
		case types.Float:
			f, _ := v.AsFloat()
			out := strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(out, ".eE") {
				out += ".0"
			}
			return out
		case types.Str:
			s, _ := v.AsStr()
			return strconv.Quote(s)
		}
	case types.TArray:
		view, _ := v.AsArray()
		elems := make([]string, view.Len())
		for i := range elems {
			elem, _ := view.At(i)
			elems[i] = Format(elem)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case types.TRecord:
		view, _ := v.AsRecord()
		fields := make([]string, view.Len())
		for i := range fields {
			f, fv, _ := view.At(i)
			fields[i] = fmt.Sprintf("%s: %s", f.Name, Format(fv))
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case types.TFunc:
		fn, _ := v.AsFunc()
		return "<fn " + fn.Name + ">"
	}
	return "<" + v.Ty().String() + ">"
}
