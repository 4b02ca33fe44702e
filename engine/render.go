package engine

import (
	"fmt"
	"strings"

	"github.com/kavolang/kavo/compiler/analyzer"
)

// Render formats a diagnostic with caret context from the source text:
//
//	error: type mismatch: expected Int, got Bool
//	 --> 1:5
//	  |
//	1 | 1 + true
//	  |     ^^^^
//	  = help: ...
func Render(src string, d analyzer.Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Severity, d.Msg)
	fmt.Fprintf(&sb, " --> %s\n", d.Span.Start)

	lines := strings.Split(src, "\n")
	lineNo := d.Span.Start.Line
	if lineNo >= 1 && lineNo <= len(lines) {
		line := lines[lineNo-1]
		gutter := fmt.Sprintf("%d", lineNo)
		pad := strings.Repeat(" ", len(gutter))
		fmt.Fprintf(&sb, "%s |\n", pad)
		fmt.Fprintf(&sb, "%s | %s\n", gutter, line)

		start := d.Span.Start.Col - 1
		width := 1
		if d.Span.End.Line == lineNo && d.Span.End.Col > d.Span.Start.Col {
			width = d.Span.End.Col - d.Span.Start.Col
		} else if d.Span.End.Line > lineNo {
			width = len(line) - start
		}
		if start < 0 {
			start = 0
		}
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(&sb, "%s | %s%s\n", pad,
			strings.Repeat(" ", start), strings.Repeat("^", width))
	}

	if d.Help != "" {
		fmt.Fprintf(&sb, "  = help: %s\n", d.Help)
	}
	return sb.String()
}

// RenderAll renders every diagnostic, separated by blank lines.
func RenderAll(src string, ds analyzer.Diagnostics) string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = Render(src, d)
	}
	return strings.Join(out, "\n")
}
