package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// check: lex and parse only
var CheckCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Lex and parse source files, reporting the first error in each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		passed, failed := 0, 0
		for _, path := range args {
			if _, err := s.compileFile(path); err != nil {
				if !errors.Is(err, ErrReported) {
					fmt.Fprintf(s.stderr, "%s: %v\n", path, err)
				}
				fmt.Fprintf(s.stdout, "  ❌ %s\n", path)
				failed++
				continue
			}
			fmt.Fprintf(s.stdout, "  ✅ %s\n", path)
			passed++
		}

		s.logger.Info("check finished", "passed", passed, "failed", failed)
		if failed > 0 {
			return ErrReported
		}
		return nil
	},
}
