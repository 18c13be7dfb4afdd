// Package config loads per-project settings from sprig.toml or sprig.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Format is the configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

const (
	EmitIR   = "ir"   // write QBE SSA next to the build output
	EmitNone = "none" // stop after parsing

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	// BaseName is the file name Discover looks for, without extension.
	BaseName = "sprig"
)

var extensions = []string{".toml", ".yaml", ".yml"}

// Config holds project settings. Zero fields are filled from Default.
type Config struct {
	OutDir   string `toml:"out_dir" yaml:"out_dir"`
	Emit     string `toml:"emit" yaml:"emit"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	Color    string `toml:"color" yaml:"color"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		OutDir:   "out",
		Emit:     EmitIR,
		LogLevel: "info",
		Color:    ColorAuto,
	}
}

// Load reads path, picking the decoder from its extension (.toml, .yaml or
// .yml; anything else is read as TOML).
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	format := detectFormat(path)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, cfg)
	default:
		err = toml.Unmarshal(content, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s config %s: %w", format, path, err)
	}

	cfg.Path = path
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for sprig.toml, sprig.yaml or sprig.yml in dir, in that
// order. Without one it returns Default().
func Discover(dir string) (*Config, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, BaseName+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return Load(path)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	return Default(), nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Emit {
	case EmitIR, EmitNone:
	default:
		return fmt.Errorf("invalid emit %q (want %s or %s)", c.Emit, EmitIR, EmitNone)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (want %s, %s or %s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return errors.New("out_dir must not be empty")
	}
	return nil
}

// UseColor resolves the Color setting for output written to w. In auto mode
// only a terminal gets color; buffers and pipes never do.
func (c *Config) UseColor(w io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.OutDir == "" {
		c.OutDir = def.OutDir
	}
	if c.Emit == "" {
		c.Emit = def.Emit
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Color == "" {
		c.Color = def.Color
	}
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
