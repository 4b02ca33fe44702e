package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kavolang/kavo/engine"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Compile and evaluate an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		src := args[0]
		expr, err := eng.Compile(src)
		if err != nil {
			reportError(src, err)
			return fmt.Errorf("compilation failed")
		}
		out, err := expr.RunIsolated()
		if err != nil {
			reportError(src, err)
			return fmt.Errorf("evaluation failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), engine.Format(out))
		return nil
	},
}
