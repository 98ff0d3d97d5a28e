// Package tui replays a computed trajectory in the terminal, scrubbing
// through the integration points at an adjustable speed.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/slayoo/odesys/internal/ode"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const plotWindow = 120

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	method    string
	problem   string
	result    *ode.Result
	pos       int
	component int
	speed     int
	paused    bool
	width     int
	height    int
}

// NewReplay builds a viewer over a completed integration result.
func NewReplay(method, problem string, result *ode.Result) tea.Model {
	return model{
		method:  method,
		problem: problem,
		result:  result,
		speed:   1,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.pos = 0
		case "+", "=":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "tab":
			if ny := len(m.result.Y[0]); ny > 0 {
				m.component = (m.component + 1) % ny
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && m.pos < m.result.Len()-1 {
			m.pos += m.speed
			if m.pos > m.result.Len()-1 {
				m.pos = m.result.Len() - 1
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("  %s / %s", m.problem, m.method)))
	b.WriteString(dim.Render(fmt.Sprintf("   point %d/%d   speed %dx", m.pos, m.result.Len()-1, m.speed)))
	if m.paused {
		b.WriteString(yellow.Render("   [paused]"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.plot())
	b.WriteString("\n\n")

	x := m.result.X[m.pos]
	y := m.result.Y[m.pos]
	b.WriteString(white.Render(fmt.Sprintf("  x=%.4f", x)))
	for i, v := range y {
		style := dim
		if i == m.component {
			style = green
		}
		b.WriteString(style.Render(fmt.Sprintf("   y%d=%+.5f", i, v)))
	}
	b.WriteString("\n\n")
	b.WriteString(dim.Render("  space pause   tab component   +/- speed   r restart   q quit"))
	b.WriteString("\n")
	return b.String()
}

// plot graphs the selected component over a sliding window ending at the
// current position.
func (m model) plot() string {
	start := m.pos - plotWindow
	if start < 0 {
		start = 0
	}
	data := make([]float64, 0, m.pos-start+1)
	for i := start; i <= m.pos; i++ {
		data = append(data, m.result.Y[i][m.component])
	}
	if len(data) < 2 {
		data = append(data, data[0])
	}

	w := m.width - 14
	if w < 20 {
		w = 20
	}
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	if h > 15 {
		h = 15
	}
	return asciigraph.Plot(data,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Caption(fmt.Sprintf("y%d", m.component)),
	)
}

// Run blocks until the viewer exits.
func Run(method, problem string, result *ode.Result) error {
	if result.Len() == 0 {
		return fmt.Errorf("empty trajectory")
	}
	p := tea.NewProgram(NewReplay(method, problem, result), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
