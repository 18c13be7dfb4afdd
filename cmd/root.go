package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	outDir     string
	configPath string
	logLevel   string
	colorMode  string
)

// ErrReported is returned when a command already printed its failure.
var ErrReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "sprig",
	Short: "Sprig CLI: lexer, parser and QBE backend for .sprig sources",
	Long: `Sprig compiles .sprig source files to QBE SSA.

Commands:
  init     Scaffold a new Sprig project
  build    Compile a (.sprig) source file into (.ssa) QBE IR
  check    Lex and parse source files without writing output
  tokens   Print the token stream of a source file
  ast      Print the syntax tree of a source file
  watch    Rebuild a source file whenever it changes
  run      Build, assemble, link and run a source file
  inspect  Browse tokens, syntax tree and IR in the terminal
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "out", "output directory for build artifacts")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: sprig.toml or sprig.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colored diagnostics: auto, always or never")

	rootCmd.AddCommand(InitCmd, BuildCmd, CheckCmd, TokensCmd, ASTCmd, WatchCmd, RunCmd, InspectCmd)
}
