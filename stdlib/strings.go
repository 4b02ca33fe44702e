package stdlib

import (
	"strings"
	"unicode/utf8"

	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/engine"
)

func installStrings(tb *types.Arena, eb *engine.EnvironmentBuilder) {
	bindModule(tb, eb, "strings", []entry{
		fnEntry(fn1(tb, "len", strM, intM, func(s string) int64 {
			return int64(utf8.RuneCountInString(s))
		})),
		fnEntry(fn1(tb, "upper", strM, strM, strings.ToUpper)),
		fnEntry(fn1(tb, "lower", strM, strM, strings.ToLower)),
		fnEntry(fn2(tb, "contains", strM, strM, boolM, strings.Contains)),
		fnEntry(fn2(tb, "concat", strM, strM, strM, func(a, b string) string {
			return a + b
		})),
		fnEntry(fn2(tb, "repeat", strM, intM, strM, func(s string, n int64) string {
			if n < 0 {
				n = 0
			}
			return strings.Repeat(s, int(n))
		})),
	})
}
