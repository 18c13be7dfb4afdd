package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/compiler"
	"github.com/arnavsurve/sprig/internal/compiler/ast"
	"github.com/arnavsurve/sprig/internal/compiler/diag"
	"github.com/arnavsurve/sprig/internal/config"
	"github.com/arnavsurve/sprig/internal/logging"
)

// session is the state one command invocation shares between its steps.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	cache  *compiler.Cache
	color  bool
	stdout io.Writer
	stderr io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	cache, err := compiler.NewCache(0)
	if err != nil {
		return nil, err
	}

	logger, _ := logging.ForBuild(logging.New(cmd.ErrOrStderr(), cfg.LogLevel))
	logger.Debug("config loaded", "path", cfg.Path, "out", cfg.OutDir, "emit", cfg.Emit)

	return &session{
		cfg:    cfg,
		logger: logger,
		cache:  cache,
		color:  cfg.UseColor(cmd.ErrOrStderr()),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}, nil
}

// loadConfig reads the config file (explicit or discovered) and applies the
// flags the user set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutDir = outDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("color") {
		cfg.Color = colorMode
	}
	return cfg, cfg.Validate()
}

// reloadConfig rereads the config and drops every cached compile. On error
// the current config stays in place.
func (s *session) reloadConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.color = cfg.UseColor(s.stderr)
	s.cache.Purge()
	s.logger.Debug("config reloaded", "path", cfg.Path, "out", cfg.OutDir, "emit", cfg.Emit)
	return nil
}

// compileFile compiles path through the session cache. Errors, skipped
// characters and warnings are printed to stderr; a failed compile returns
// ErrReported.
func (s *session) compileFile(path string) (*compiler.Result, error) {
	src, err := compiler.ReadSource(path)
	if err != nil {
		return nil, err
	}

	r := diag.NewRenderer(path, src, s.color)
	res, cached, err := s.cache.Compile(src)
	if err != nil {
		fmt.Fprint(s.stderr, r.Error(err))
		s.logger.Debug("compile failed", "file", path, "err", err)
		return nil, ErrReported
	}

	for _, d := range res.Diagnostics {
		fmt.Fprint(s.stderr, r.Diagnostic(d))
	}
	s.printWarnings(path, res.Warnings)

	s.logger.Debug("compiled", "file", path, "tokens", len(res.Tokens), "nodes", ast.Count(res.Program), "cached", cached, "cache_size", s.cache.Len())
	return res, nil
}

// buildFile compiles path and, unless emission is off, writes its IR. It
// returns the IR path, empty when nothing was written.
func (s *session) buildFile(path string) (string, error) {
	if err := compiler.ValidateExtension(path); err != nil {
		return "", err
	}

	res, err := s.compileFile(path)
	if err != nil {
		return "", err
	}

	if s.cfg.Emit == config.EmitNone {
		s.logger.Info("parsed", "file", path, "statements", len(res.Program.Statements))
		return "", nil
	}

	outFile, warnings, err := compiler.WriteIR(res, path, s.cfg.OutDir)
	s.printWarnings(path, warnings)
	if err != nil {
		return "", err
	}
	s.logger.Info("wrote IR", "file", outFile)
	return outFile, nil
}

func (s *session) printWarnings(path string, warnings []string) {
	r := diag.NewRenderer(path, "", s.color)
	for _, w := range warnings {
		fmt.Fprint(s.stderr, r.Warning(w))
	}
}
