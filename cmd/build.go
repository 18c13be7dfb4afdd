package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// build: compile a source file to IR
var BuildCmd = &cobra.Command{
	Use:   "build [file.sprig]",
	Short: "Compile a (.sprig) source file into (.ssa) QBE IR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		outFile, err := s.buildFile(args[0])
		if err != nil {
			return err
		}
		if outFile != "" {
			fmt.Fprintf(s.stdout, "↪ wrote %s\n", outFile)
		}
		return nil
	},
}
