package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/compiler/ast"
)

var astFormat string

// ast: pretty-print the syntax tree
var ASTCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		res, err := s.compileFile(args[0])
		if err != nil {
			return err
		}

		switch astFormat {
		case "tree":
			ast.PrintTree(s.stdout, res.Program)
		case "source":
			fmt.Fprint(s.stdout, res.Program.String())
		default:
			return fmt.Errorf("unknown format %q (want tree or source)", astFormat)
		}
		return nil
	},
}

func init() {
	ASTCmd.Flags().StringVarP(&astFormat, "format", "f", "tree", "output format: tree or source")
}
