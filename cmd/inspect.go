package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/compiler"
	"github.com/arnavsurve/sprig/internal/tui/inspect"
)

// inspect: interactive viewer
var InspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Browse the tokens, syntax tree and IR of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		res, err := s.compileFile(path)
		if err != nil {
			return err
		}

		ir, warnings, err := compiler.EmitIR(res.Program)
		if err != nil {
			s.logger.Warn("no IR", "file", path, "err", err)
		}
		s.printWarnings(path, warnings)

		return inspect.Run(path, res, ir)
	},
}
