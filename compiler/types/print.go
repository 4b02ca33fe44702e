package types

import (
	"fmt"
	"strings"

	"github.com/rjNemo/underscore"
)

// String renders the type in the surface syntax used by diagnostics,
// e.g. `Array[Int]`, `{x: Int, y: Float}`, `(Int, Int) -> Bool`.
func (n *Node) String() string {
	switch k := n.kind.(type) {
	case TVar:
		return fmt.Sprintf("?%d", k.ID)
	case TScalar:
		return k.Scalar.String()
	case TArray:
		return fmt.Sprintf("Array[%s]", k.Elem)
	case TMap:
		return fmt.Sprintf("Map[%s, %s]", k.Key, k.Value)
	case TRecord:
		fields := underscore.Map(k.Fields, func(f Field) string {
			return fmt.Sprintf("%s: %s", f.Name, f.Type)
		})
		return "{" + strings.Join(fields, ", ") + "}"
	case TFunc:
		params := underscore.Map(k.Params, func(p Ty) string {
			return p.String()
		})
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), k.Ret)
	case TSymbol:
		tags := underscore.Map(k.Tags, func(t Ident) string {
			return fmt.Sprintf("%q", string(t))
		})
		return "Symbol[" + strings.Join(tags, ", ") + "]"
	default:
		return "<unknown type>"
	}
}
