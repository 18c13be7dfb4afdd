package emitter

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/sprig/internal/compiler/ast"
	"github.com/arnavsurve/sprig/internal/compiler/token"
)

// NOTES:
// - Only print statements with a string literal argument are lowered. Every
//   other statement is skipped with a warning until the backend learns
//   variables and control flow.

const (
	bodyIndent = "    "
	mainHeader = "export function w $main() {\n@start\n"
)

// Emitter lowers a program to QBE SSA text.
type Emitter struct {
	builder  strings.Builder
	errors   []string
	warnings []string
	pool     *constPool
	calls    []string // labels passed to puts, in program order
}

func NewEmitter() *Emitter {
	return &Emitter{
		errors:   []string{},
		warnings: []string{},
		pool:     newConstPool(),
	}
}

func (e *Emitter) addError(format string, args ...any) {
	e.errors = append(e.errors, fmt.Sprintf(format, args...))
}

func (e *Emitter) addWarning(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.warnings = append(e.warnings, fmt.Sprintf("%s: Emitter Warning: %s", tok.Pos(), msg))
}

func (e *Emitter) Errors() []string {
	return e.errors
}

func (e *Emitter) Warnings() []string {
	return e.warnings
}

// --- Main Emit Function ---

// Emit returns the IR for program. The output is deterministic: string
// constants appear in the order they are first printed.
func (e *Emitter) Emit(program *ast.Program) string {
	e.builder.Reset()
	e.errors = []string{}
	e.warnings = []string{}
	e.pool = newConstPool()
	e.calls = nil

	if program == nil {
		e.addError("Internal Emitter Error: Received nil program from parser.")
		return ""
	}

	for _, stmt := range program.Statements {
		e.collectStatement(stmt)
	}

	e.emitData()
	e.builder.WriteString("\n" + mainHeader)
	for _, label := range e.calls {
		e.emitInstr(fmt.Sprintf("call $puts(l %s)", label))
	}
	e.emitInstr("ret 0")
	e.builder.WriteString("}\n")

	return e.builder.String()
}

// --- Collection Phase ---

func (e *Emitter) collectStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		text, ok := s.StringLiteral()
		if !ok {
			at := s.Token
			if s.Value != nil {
				at = s.Value.GetToken()
			}
			e.addWarning(at, "print of a non-string value is not supported yet, skipped")
			return
		}
		e.calls = append(e.calls, e.pool.Insert(text))
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			e.collectStatement(inner)
		}
	case *ast.VarDeclStatement:
		e.addWarning(s.Token, "variable %q is not lowered, skipped", s.Name.Value)
	case *ast.IfStatement:
		e.addWarning(s.Token, "if statement is not lowered, skipped")
	case *ast.ForStatement:
		e.addWarning(s.Token, "for loop is not lowered, skipped")
	case *ast.ExpressionStatement:
		e.addWarning(s.Token, "expression statement is not lowered, skipped")
	default:
		e.addError("Emitter encountered unknown statement type: %T", stmt)
	}
}

// --- Emit Helpers ---

func (e *Emitter) emitData() {
	for _, entry := range e.pool.order {
		e.builder.WriteString(fmt.Sprintf("data %s = { b \"%s\", b 0 }\n", entry.label, entry.data))
	}
}

func (e *Emitter) emitInstr(line string) {
	e.builder.WriteString(bodyIndent + line + "\n")
}
