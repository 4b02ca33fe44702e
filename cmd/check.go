package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <expression>",
	Short: "Type-check an expression and print its inferred type",
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
			return fmt.Errorf("check failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), expr.Ty())
		return nil
	},
}
