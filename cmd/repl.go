package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kavolang/kavo/engine"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		out := cmd.OutOrStdout()
		if interactive {
			fmt.Fprintln(out, "kavo repl; :type <expr> shows a type, :quit exits")
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Fprint(out, "kavo> ")
			}
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case line == ":quit" || line == ":q":
				return nil
			case strings.HasPrefix(line, ":type "):
				src := strings.TrimSpace(strings.TrimPrefix(line, ":type "))
				expr, err := eng.Compile(src)
				if err != nil {
					reportError(src, err)
					continue
				}
				fmt.Fprintln(out, expr.Ty())
			default:
				expr, err := eng.Compile(line)
				if err != nil {
					reportError(line, err)
					continue
				}
				result, err := expr.RunIsolated()
				if err != nil {
					reportError(line, err)
					continue
				}
				fmt.Fprintln(out, engine.Format(result))
			}
		}
		return scanner.Err()
	},
}
