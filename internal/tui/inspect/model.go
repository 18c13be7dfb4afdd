// Package inspect is a terminal viewer for one compiled source file. It shows
// the token stream, the syntax tree and the emitted IR in switchable panes.
package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arnavsurve/sprig/internal/compiler"
	"github.com/arnavsurve/sprig/internal/compiler/ast"
)

type pane int

const (
	paneTokens pane = iota
	paneAST
	paneIR
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneTokens:
		return "Tokens"
	case paneAST:
		return "AST"
	case paneIR:
		return "IR"
	default:
		return "?"
	}
}

const (
	headerHeight = 3
	footerHeight = 2
)

// Model is the bubbletea model for the inspector.
type Model struct {
	file     string
	contents [paneCount]string
	active   pane

	width    int
	height   int
	ready    bool
	viewport viewport.Model
}

// New builds the inspector for a compiled file. ir may be empty when the
// program could not be lowered.
func New(file string, res *compiler.Result, ir string) Model {
	m := Model{file: file}
	m.contents[paneTokens] = renderTokens(res)
	m.contents[paneAST] = ast.Sprint(res.Program)
	if ir == "" {
		ir = "(no IR)"
	}
	m.contents[paneIR] = ir
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.setPane((m.active + 1) % paneCount)
			return m, nil
		case "shift+tab", "left", "h":
			m.setPane((m.active + paneCount - 1) % paneCount)
			return m, nil
		case "1", "2", "3":
			m.setPane(pane(msg.String()[0] - '1'))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.contents[m.active])
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setPane(p pane) {
	m.active = p
	if m.ready {
		m.viewport.SetContent(m.contents[p])
		m.viewport.GotoTop()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(paneStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, paneCount)
	for p := pane(0); p < paneCount; p++ {
		label := fmt.Sprintf("%d:%s", p+1, p)
		if p == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	title := titleStyle.Render(m.file)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " "))
}

func (m Model) renderHelpBar() string {
	return helpStyle.Render("tab/1-3 switch pane • ↑/↓ scroll • q quit")
}

func renderTokens(res *compiler.Result) string {
	var b strings.Builder
	for _, tok := range res.Tokens {
		typ := string(tok.Type)
		pad := strings.Repeat(" ", max(0, 10-len(typ)))
		if tok.IsKeyword() {
			typ = keywordStyle.Render(typ)
		}
		fmt.Fprintf(&b, "%-8s %s%s %q\n", tok.Pos(), typ, pad, tok.Literal)
	}
	for _, d := range res.Diagnostics {
		b.WriteString(d.String() + "\n")
	}
	return b.String()
}

// Run starts the inspector full screen.
func Run(file string, res *compiler.Result, ir string) error {
	p := tea.NewProgram(New(file, res, ir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
