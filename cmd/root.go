package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kavolang/kavo/compiler/analyzer"
	"github.com/kavolang/kavo/compiler/types"
	"github.com/kavolang/kavo/engine"
	"github.com/kavolang/kavo/stdlib"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kavo",
	Short: "Kavo is an embeddable, statically typed expression language",
	Long: `Kavo compiles and evaluates typed expressions.

Expressions support literals, arrays, records, arithmetic, comparisons,
if/then/else, where-bindings and the native stdlib packages (math, ints,
arrays, strings).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a kavo.toml with engine limits")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
}

// newEngine builds an engine with the stdlib installed and limits taken
// from the config file.
func newEngine() (*engine.Engine, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Options{
		MaxParseDepth: cfg.MaxParseDepth,
		MaxSteps:      cfg.MaxSteps,
	}, func(tb *types.Arena, eb *engine.EnvironmentBuilder) {
		stdlib.Install(tb, eb)
	})
}

var errHeader = color.New(color.FgRed, color.Bold)

// reportError prints a compile or runtime failure. Analyzer diagnostics
// get caret context; everything else prints as a single line.
func reportError(src string, err error) {
	if diags, ok := err.(analyzer.Diagnostics); ok {
		for i, d := range diags {
			if i > 0 {
				fmt.Fprintln(os.Stderr)
			}
			errHeader.Fprintf(os.Stderr, "%s", d.Severity)
			rest := engine.Render(src, d)
			// Render starts with the severity; reprint the remainder.
			fmt.Fprint(os.Stderr, rest[len(d.Severity.String()):])
		}
		return
	}
	errHeader.Fprint(os.Stderr, "error")
	fmt.Fprintf(os.Stderr, ": %v\n", err)
}
