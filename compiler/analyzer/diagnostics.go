package analyzer

import (
	"fmt"
	"strings"

	"github.com/kavolang/kavo/compiler/lexer"
)

// Severity ranks a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single analyzer finding, pointing at a source span.
// Help, when present, suggests a fix.
type Diagnostic struct {
	Severity Severity
	Span     lexer.Span
	Msg      string
	Help     string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Severity, d.Msg)
	if d.Help != "" {
		s += " (help: " + d.Help + ")"
	}
	return s
}

// Diagnostics collects every finding of one analysis. The analyzer
// never stops at the first problem; all diagnostics come back together.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.String()
	}
	return strings.Join(msgs, "\n")
}

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
