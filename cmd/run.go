package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/config"
	"github.com/arnavsurve/sprig/internal/toolchain"
)

var (
	qbePath string
	ccPath  string
)

// run: build, then assemble, link and execute natively
var RunCmd = &cobra.Command{
	Use:   "run [file.sprig]",
	Short: "Build a source file and run it through qbe and cc",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		// run always needs the IR on disk
		s.cfg.Emit = config.EmitIR

		tc := toolchain.Default()
		tc.QBE = qbePath
		tc.CC = ccPath
		if err := tc.Available(); err != nil {
			return fmt.Errorf("cannot run: %w", err)
		}

		ssaPath, err := s.buildFile(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		binPath, err := tc.Build(ctx, ssaPath)
		if err != nil {
			return err
		}
		s.logger.Debug("linked", "binary", binPath)

		out, runErr := tc.Run(ctx, binPath)
		if _, err := s.stdout.Write(out); err != nil {
			return fmt.Errorf("write program output: %w", err)
		}
		if runErr != nil {
			return fmt.Errorf("%s: %w", binPath, runErr)
		}
		return nil
	},
}

func init() {
	RunCmd.Flags().StringVar(&qbePath, "qbe", "qbe", "qbe executable")
	RunCmd.Flags().StringVar(&ccPath, "cc", "cc", "C compiler used to assemble and link")
}
