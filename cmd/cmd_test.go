package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/sprig/internal/compiler"
	"github.com/arnavsurve/sprig/internal/compiler/lexer"
	"github.com/arnavsurve/sprig/internal/config"
)

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")

	files, err := scaffold(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "out/\n", string(ignore))

	cfg, err := config.Load(filepath.Join(dir, "sprig.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().OutDir, cfg.OutDir)
	assert.Equal(t, config.EmitIR, cfg.Emit)

	outFile, err := compiler.CompileAndWrite(filepath.Join(dir, "main.sprig"), filepath.Join(dir, "out"))
	require.NoError(t, err)
	ir, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(ir), `b "hello from hello"`)
}

func TestScaffoldRefusesExistingDir(t *testing.T) {
	_, err := scaffold(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteTokenTable(t *testing.T) {
	toks, err := lexer.Tokenize(`print("hi");`)
	require.NoError(t, err)

	var buf bytes.Buffer
	writeTokenTable(&buf, toks)
	out := buf.String()

	for _, want := range []string{"PRINT", "LPAREN", "STRING", "RPAREN", "SEMICOLON", "EOF"} {
		assert.Contains(t, out, want)
	}
	// header plus one row per token
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			rows++
		}
	}
	assert.Equal(t, len(toks)+1, rows)
}

// execute runs the root command the way main does, capturing its output.
// Flag values persist between runs, so callers pass every flag they rely on.
func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func testdataFiles(t *testing.T, kind string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "internal", "compiler", "testdata", kind, "*.sprig"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestCheckCommandReportsBadPrograms(t *testing.T) {
	files := testdataFiles(t, "bad")

	args := append([]string{"check", "--color", "never", "--log-level", "error"}, files...)
	stdout, stderr, err := execute(t, context.Background(), args...)
	require.ErrorIs(t, err, ErrReported)

	for _, file := range files {
		assert.Contains(t, stdout, "❌ "+file)
		assert.Contains(t, stderr, file+":")
	}
	assert.NotContains(t, stdout, "✅")
	assert.Contains(t, stderr, "Syntax Error:")
}

func TestCheckCommandPassesGoodPrograms(t *testing.T) {
	files := testdataFiles(t, "good")

	args := append([]string{"check", "--color", "never", "--log-level", "error"}, files...)
	stdout, _, err := execute(t, context.Background(), args...)
	require.NoError(t, err)

	for _, file := range files {
		assert.Contains(t, stdout, "✅ "+file)
	}
}

func TestBuildCommandWritesGoldenIR(t *testing.T) {
	for _, file := range testdataFiles(t, "good") {
		name := strings.TrimSuffix(filepath.Base(file), compiler.SourceExt)
		t.Run(name, func(t *testing.T) {
			outDir := t.TempDir()
			stdout, _, err := execute(t, context.Background(),
				"build", "--out", outDir, "--color", "never", "--log-level", "error", file)
			require.NoError(t, err)

			outFile := filepath.Join(outDir, name+compiler.IRExt)
			assert.Equal(t, "↪ wrote "+outFile+"\n", stdout)

			got, err := os.ReadFile(outFile)
			require.NoError(t, err)
			want, err := os.ReadFile(strings.TrimSuffix(file, compiler.SourceExt) + compiler.IRExt)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got))
		})
	}
}

func TestBuildCommandRejectsBadProgram(t *testing.T) {
	file := testdataFiles(t, "bad")[0]
	outDir := t.TempDir()

	_, stderr, err := execute(t, context.Background(),
		"build", "--out", outDir, "--color", "never", "--log-level", "error", file)
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, stderr, "Syntax Error:")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestASTCommand(t *testing.T) {
	file := filepath.Join("..", "internal", "compiler", "testdata", "good", "hello.sprig")

	stdout, _, err := execute(t, context.Background(),
		"ast", "--format", "tree", "--color", "never", "--log-level", "error", file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "PROGRAM\n  PRINT\n"), stdout)
	assert.Contains(t, stdout, "Hello, world!")

	stdout, _, err = execute(t, context.Background(),
		"ast", "--format", "source", "--color", "never", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "print(")

	_, _, err = execute(t, context.Background(),
		"ast", "--format", "json", "--color", "never", "--log-level", "error", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestWatchCommandBuildsBeforeWatching(t *testing.T) {
	srcDir := t.TempDir()
	file := filepath.Join(srcDir, "main.sprig")
	require.NoError(t, os.WriteFile(file, []byte(`print("watched");`), 0o644))
	outDir := t.TempDir()

	// an already cancelled context stops the loop right after the first build
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := execute(t, ctx,
		"watch", "--out", outDir, "--color", "never", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "↪ wrote ")

	ir, err := os.ReadFile(filepath.Join(outDir, "main.ssa"))
	require.NoError(t, err)
	assert.Contains(t, string(ir), `b "watched"`)
}

func TestReloadConfigPurgesCache(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "sprig.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`out_dir = "first"`), 0o644))
	src := filepath.Join(dir, "main.sprig")
	require.NoError(t, os.WriteFile(src, []byte(`print("x");`), 0o644))

	configPath = cfgFile
	t.Cleanup(func() { configPath = "" })

	cmd := &cobra.Command{}
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetOut(&bytes.Buffer{})

	s, err := newSession(cmd)
	require.NoError(t, err)
	assert.Equal(t, "first", s.cfg.OutDir)
	assert.False(t, s.color, "a buffer is not a terminal")

	_, err = s.compileFile(src)
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Len())

	require.NoError(t, os.WriteFile(cfgFile, []byte(`out_dir = "second"`), 0o644))
	require.NoError(t, s.reloadConfig(cmd))
	assert.Equal(t, "second", s.cfg.OutDir)
	assert.Equal(t, 0, s.cache.Len())

	// an invalid config keeps the previous settings
	require.NoError(t, os.WriteFile(cfgFile, []byte(`emit = "wasm"`), 0o644))
	err = s.reloadConfig(cmd)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrReported))
	assert.Equal(t, "second", s.cfg.OutDir)
}
