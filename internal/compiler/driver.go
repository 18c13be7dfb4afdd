package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/sprig/internal/compiler/ast"
	"github.com/arnavsurve/sprig/internal/compiler/emitter"
	"github.com/arnavsurve/sprig/internal/compiler/lexer"
	"github.com/arnavsurve/sprig/internal/compiler/parser"
	"github.com/arnavsurve/sprig/internal/compiler/token"
)

const (
	SourceExt = ".sprig"
	IRExt     = ".ssa"
)

// Result holds everything the front end produced for one source text.
type Result struct {
	Tokens      []token.Token
	Program     *ast.Program
	Diagnostics []lexer.Diagnostic // skipped characters
	Warnings    []string           // parser warnings
}

// Compile lexes and parses src. A lex or parse error is returned as is so
// callers can inspect it with errors.As.
func Compile(src string) (*Result, error) {
	lex := lexer.NewLexer(src)
	toks, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(toks)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	return &Result{
		Tokens:      toks,
		Program:     prog,
		Diagnostics: lex.Diagnostics(),
		Warnings:    p.Warnings(),
	}, nil
}

// CompileAndWrite compiles srcPath and writes its IR into outDir, returning
// the path of the written file.
func CompileAndWrite(srcPath, outDir string) (string, error) {
	if err := ValidateExtension(srcPath); err != nil {
		return "", err
	}

	content, err := ReadSource(srcPath)
	if err != nil {
		return "", err
	}

	res, err := Compile(content)
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", srcPath, err)
	}

	outFile, _, err := WriteIR(res, srcPath, outDir)
	return outFile, err
}

// WriteIR lowers an already compiled program and writes it into outDir. It
// returns the written path and the emitter's warnings.
func WriteIR(res *Result, srcPath, outDir string) (string, []string, error) {
	ir, warnings, err := EmitIR(res.Program)
	if err != nil {
		return "", warnings, err
	}
	outFile, err := writeOutput(ir, srcPath, outDir)
	return outFile, warnings, err
}

// EmitIR lowers prog to QBE SSA.
func EmitIR(prog *ast.Program) (string, []string, error) {
	em := emitter.NewEmitter()
	ir := em.Emit(prog)
	if errs := em.Errors(); len(errs) > 0 {
		return "", em.Warnings(), fmt.Errorf("emitter errors: %v", errs)
	}
	return ir, em.Warnings(), nil
}

// OutputPath is where CompileAndWrite puts the IR for srcPath.
func OutputPath(srcPath, outDir string) string {
	return filepath.Join(outDir, strings.TrimSuffix(filepath.Base(srcPath), SourceExt)+IRExt)
}

// ValidateExtension rejects paths without the source extension.
func ValidateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

// ReadSource reads a whole source file.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

func writeOutput(ir, srcPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outFile := OutputPath(srcPath, outDir)
	return outFile, os.WriteFile(outFile, []byte(ir), 0o644)
}
