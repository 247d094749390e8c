package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/calculus/internal/calc"
	"github.com/san-kum/calculus/internal/config"
	"github.com/san-kum/calculus/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateRunning
	stateResult
)

type model struct {
	calc  *calc.Calculator
	state state

	cursor   int
	solvers  []string
	selected *calc.Solver

	params      []string
	paramCursor int
	editing     bool
	editBuf     string

	outcome *calc.Outcome
	err     error

	width  int
	height int
}

type resultMsg struct {
	outcome *calc.Outcome
	err     error
}

func newModel(c *calc.Calculator) model {
	return model{
		calc:    c,
		state:   stateMenu,
		solvers: c.Registry().List(),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case resultMsg:
		m.outcome, m.err = msg.outcome, msg.err
		m.state = stateResult
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.solvers)-1 {
			m.cursor++
		}
	case "enter", " ":
		s, err := m.calc.Registry().Get(m.solvers[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.selected = s
		m.state = stateConfig
		m.paramCursor = 0
		m.params = defaultParams(s)
	}
	return m, nil
}

// defaultParams prefills the editor from the solver's worked example.
func defaultParams(s *calc.Solver) []string {
	if p := config.PresetFor(s.Name); p != nil && len(p.Args) == len(s.Params) {
		return append([]string(nil), p.Args...)
	}
	return make([]string, len(s.Params))
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.Type {
		case tea.KeyEnter:
			m.params[m.paramCursor] = strings.TrimSpace(m.editBuf)
			m.editing = false
			m.editBuf = ""
		case tea.KeyEsc:
			m.editing = false
			m.editBuf = ""
		case tea.KeyBackspace:
			if r := []rune(m.editBuf); len(r) > 0 {
				m.editBuf = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.editBuf += " "
		case tea.KeyRunes:
			m.editBuf += string(msg.Runes)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = m.params[m.paramCursor]
	case "s", "r":
		m.state = stateRunning
		return m, m.run()
	}
	return m, nil
}

func (m model) run() tea.Cmd {
	c, name := m.calc, m.selected.Name
	args := append([]string(nil), m.params...)
	return func() tea.Msg {
		out, err := c.Run(context.Background(), name, args)
		return resultMsg{outcome: out, err: err}
	}
}

func (m model) resultKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.outcome, m.err = nil, nil
	case "c", "enter":
		m.state = stateConfig
		m.outcome, m.err = nil, nil
	case "r":
		m.state = stateRunning
		return m, m.run()
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateRunning:
		return m.viewConfig() + "\n" + yellow.Render("      running…") + "\n"
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("c a l c u l u s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.solvers {
		desc := ""
		if s, err := m.calc.Registry().Get(name); err == nil {
			desc = s.Short
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + viz.Selected.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("      " + viz.KeyHint.Render("↑↓ select   enter choose   q quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	s := m.selected

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(s.Name) + "  " + dim.Render(s.Short) + "\n")
	b.WriteString("      " + viz.Separator(40) + "\n\n")

	for i, name := range s.Params {
		val := m.params[i]
		if m.editing && i == m.paramCursor {
			val = m.editBuf + "▋"
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-6s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-6s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      f is a function of "+strings.Join(s.Vars, ", ")) + "\n")
	b.WriteString("      " + viz.KeyHint.Render("↑↓ select  enter edit  s solve  esc back") + "\n")
	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(viz.Panel.Render(viz.RenderError(m.err)))
	} else if m.outcome != nil {
		b.WriteString(viz.Panel.Render(viz.Render(m.outcome.Result)))
		if series := viz.TrajectorySeries(m.outcome.Result); series != nil {
			width := max(m.width-16, 20)
			b.WriteString("\n\n" + viz.PlotTrajectory(series, width, 8))
		}
		b.WriteString("\n   " + viz.Success.Render(fmt.Sprintf("solved in %s", m.outcome.Elapsed)))
	}

	b.WriteString("\n\n   " + viz.KeyHint.Render("r rerun  c edit  q menu") + "\n")
	return b.String()
}

// Run starts the interactive calculator on the alternate screen.
func Run(c *calc.Calculator) error {
	p := tea.NewProgram(newModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
