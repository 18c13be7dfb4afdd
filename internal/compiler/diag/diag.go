// Package diag renders compiler errors and warnings with the offending source
// line and a caret under the reported column.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arnavsurve/sprig/internal/compiler/lexer"
	"github.com/arnavsurve/sprig/internal/compiler/parser"
)

var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray

	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle   = lipgloss.NewStyle().Foreground(colorError)
)

// Renderer formats diagnostics for one source file. With Color unset the
// output is plain text.
type Renderer struct {
	File   string
	Source string
	Color  bool
}

func NewRenderer(file, source string, color bool) *Renderer {
	return &Renderer{File: file, Source: source, Color: color}
}

// Error renders err. Lexer and parser errors get a source excerpt; anything
// else is rendered as a single line.
func (r *Renderer) Error(err error) string {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError

	switch {
	case errors.As(err, &lexErr):
		return r.excerpt(r.style(errorStyle, r.prefix()+lexErr.Error()), lexErr.Line, lexErr.Column)
	case errors.As(err, &parseErr):
		return r.excerpt(r.style(errorStyle, r.prefix()+parseErr.Error()), parseErr.Line(), parseErr.Column())
	default:
		return r.style(errorStyle, r.prefix()+err.Error()) + "\n"
	}
}

// Diagnostic renders a recoverable lexer report.
func (r *Renderer) Diagnostic(d lexer.Diagnostic) string {
	return r.excerpt(r.style(warningStyle, r.prefix()+d.String()), d.Line, d.Column)
}

// Warning renders a one-line warning that already carries its position.
func (r *Renderer) Warning(msg string) string {
	return r.style(warningStyle, r.prefix()+msg) + "\n"
}

func (r *Renderer) prefix() string {
	if r.File == "" {
		return ""
	}
	return r.File + ":"
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

// excerpt appends the source line and a caret line below header. Positions
// outside the source only print the header.
func (r *Renderer) excerpt(header string, line, column int) string {
	var b strings.Builder
	b.WriteString(header + "\n")

	lines := strings.Split(r.Source, "\n")
	if line < 1 || line > len(lines) {
		return b.String()
	}
	text := strings.TrimRight(lines[line-1], "\r")

	gutter := fmt.Sprintf("%4d | ", line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	b.WriteString(r.style(gutterStyle, gutter) + text + "\n")
	b.WriteString(r.style(gutterStyle, blank) + caretPad(text, column) + r.style(caretStyle, "^") + "\n")
	return b.String()
}

// caretPad returns the whitespace that puts a caret under column, counted
// in characters. Tabs in the source are copied so the caret lines up however
// tabs are displayed.
func caretPad(text string, column int) string {
	runes := []rune(text)
	var pad strings.Builder
	for i := 0; i < column-1; i++ {
		if i < len(runes) && runes[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return pad.String()
}
