package cmd

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/config"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Scaffold a new Sprig project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding new project %q ...\n", name)

		files, err := scaffold(name)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", f)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ project %q initialized!\n", name)
		return nil
	},
}

// scaffold creates dir with a default config, a hello-world source file and
// a .gitignore for the output directory. It refuses to touch an existing
// directory.
func scaffold(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s already exists", dir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cfg := config.Default()
	cfgPath := filepath.Join(dir, config.BaseName+".toml")
	if err := writeConfig(cfgPath, cfg); err != nil {
		return nil, err
	}
	created := []string{cfgPath}

	data := map[string]string{
		"ProjectName": filepath.Base(dir),
		"OutDir":      cfg.OutDir,
	}
	files := []struct{ tpl, out string }{
		{"templates/main.sprig.tpl", "main.sprig"},
		{"templates/gitignore.tpl", ".gitignore"},
	}
	for _, f := range files {
		outPath := filepath.Join(dir, f.out)
		if err := writeTpl(f.tpl, outPath, data); err != nil {
			return nil, err
		}
		created = append(created, outPath)
	}

	return created, nil
}

func writeConfig(path string, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := t.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return f.Close()
}
