// Package tui implements a live bubbletea progress display for a
// running Sampler.GetSolutionAtPoints call: a ticking label, the last
// recorded (t, x), and an asciigraph trace of a watched component.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const historyCapacity = 300

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
)

// Sample is one (t, x) point forwarded from a running sampler.
type Sample struct {
	T float64
	X []float64
}

// TickMsg drives a redraw; SampleMsg and DoneMsg arrive over the channel
// a Model is built around.
type TickMsg time.Time
type SampleMsg Sample
type DoneMsg struct{ Err error }

// Model renders live progress for a single sampling run.
type Model struct {
	label     string
	watch     int
	samples   <-chan SampleMsg
	done      <-chan DoneMsg
	count     int
	lastT     float64
	lastX     []float64
	history   []float64
	finished  bool
	err       error
}

// NewModel builds a Model that reads samples from ch and a terminal
// signal from doneCh, watching component watch for its trace.
func NewModel(label string, watch int, ch <-chan SampleMsg, doneCh <-chan DoneMsg) Model {
	return Model{
		label:   label,
		watch:   watch,
		samples: ch,
		done:    doneCh,
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForSample(), m.waitForDone(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) waitForSample() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.samples
		if !ok {
			return nil
		}
		return s
	}
}

func (m Model) waitForDone() tea.Cmd {
	return func() tea.Msg {
		d, ok := <-m.done
		if !ok {
			return nil
		}
		return d
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case SampleMsg:
		m.count++
		m.lastT = msg.T
		m.lastX = msg.X
		if m.watch >= 0 && m.watch < len(msg.X) {
			m.history = append(m.history, msg.X[m.watch])
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, m.waitForSample()
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, nil
	case TickMsg:
		if m.finished {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(m.label)) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption(fmt.Sprintf("x%d", m.watch)))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", m.count)) + "\n")
	b.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastT)) + "\n")
	if len(m.lastX) > 0 {
		b.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%v", m.lastX)) + "\n")
	}

	if m.finished {
		if m.err != nil {
			b.WriteString(doneStyle.Render(fmt.Sprintf("\nfailed: %v\n", m.err)))
		} else {
			b.WriteString(doneStyle.Render("\ndone\n"))
		}
		b.WriteString(helpStyle.Render("q: quit"))
	} else {
		b.WriteString(helpStyle.Render("q: quit"))
	}
	return b.String()
}
