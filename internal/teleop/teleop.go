// Package teleop is an interactive keyboard driver for the oscillator
// network: switch gaits, reverse, and steer while watching the leg
// activation board update live.
package teleop

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hexcpg/internal/cpg"
	"github.com/san-kum/hexcpg/internal/legs"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const frameDt = 0.05

type model struct {
	net       *cpg.Network
	tracker   legs.Tracker
	threshold float64
	factor    float64

	outputs []float64
	lastCmd string
	simTime float64
	paused  bool
	err     error
}

// Run drives the network interactively until the user quits.
func Run(net *cpg.Network, threshold, factor float64) error {
	m := &model{
		net:       net,
		threshold: threshold,
		factor:    factor,
		outputs:   net.Outputs(),
	}
	_, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	return m.err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if !m.paused {
			out, err := m.net.Tick(frameDt)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.outputs = out
			m.simTime += frameDt
			if cmd, changed := m.tracker.Update(out, m.threshold); changed {
				m.lastCmd = cmd
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "t":
		m.err = m.net.SetGait(cpg.Tripod, cpg.DefaultCouplingStrength, true)
	case "w":
		m.err = m.net.SetGait(cpg.Wave, cpg.DefaultCouplingStrength, true)
	case "b":
		m.err = m.net.SetDirection(!m.net.Backward())
	case "left":
		m.err = m.net.Turn(cpg.TurnLeft, m.factor)
	case "right":
		m.err = m.net.Turn(cpg.TurnRight, m.factor)
	case "s":
		m.net.StopTurning()
	case "up":
		m.factor = min(1.0, m.factor+0.1)
		m.reapplyTurn()
	case "down":
		m.factor = max(0.0, m.factor-0.1)
		m.reapplyTurn()
	case "r":
		m.net.Reset()
		m.tracker.Reset()
		m.outputs = m.net.Outputs()
		m.simTime = 0
		m.lastCmd = ""
	}
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) reapplyTurn() {
	if turn := m.net.Turning(); turn.Active() {
		m.err = m.net.Turn(turn.Direction, m.factor)
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString("\n  " + cyan.Render("hexcpg teleop") +
		dim.Render(fmt.Sprintf("  t=%.1fs", m.simTime)))
	if m.paused {
		b.WriteString("  " + yellow.Render("paused"))
	}
	b.WriteString("\n\n")

	// Leg board: left column is odd oscillators, right column even.
	rows := []struct {
		label       string
		left, right int
	}{
		{"front", 1, 0},
		{"mid", 3, 2},
		{"back", 5, 4},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
			m.legCell(row.left), dim.Render(fmt.Sprintf("%-5s", row.label)),
			dim.Render(fmt.Sprintf("%5s", row.label)), m.legCell(row.right)))
	}

	b.WriteString("\n  " + white.Render("gait: ") + magenta.Render(m.net.Gait().String()))
	dir := "forward"
	if m.net.Backward() {
		dir = "backward"
	}
	b.WriteString("  " + white.Render("dir: ") + magenta.Render(dir))
	if turn := m.net.Turning(); turn.Active() {
		b.WriteString("  " + white.Render("turn: ") +
			yellow.Render(fmt.Sprintf("%s %.1f", turn.Direction, turn.Factor)))
	} else {
		b.WriteString("  " + white.Render("turn: ") + dim.Render("none"))
	}
	b.WriteString("\n  " + white.Render("cmd:  ") + green.Render(m.lastCmd) + "\n")

	b.WriteString("\n  " + dimmer.Render("t/w gait · b reverse · ←/→ turn · ↑/↓ factor · s straight · space pause · r reset · q quit") + "\n")
	return b.String()
}

func (m *model) legCell(i int) string {
	if i < len(m.outputs) && m.outputs[i] > m.threshold {
		return green.Render("[██]")
	}
	return dimmer.Render("[··]")
}
