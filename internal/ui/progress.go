// Package ui implements the optional `--ui` live progress display: a
// Bubble Tea program that subscribes to composition analyzer phase
// events and renders a per-phase status list plus an overall progress
// bar.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rc/internal/composition"
)

// phases lists every composition.Phase in the fixed order they run, so
// the display can show phases not yet reached as "queued" instead of
// only ever discovering them as events arrive.
var phases = []composition.Phase{
	composition.PhaseEnumerate,
	composition.PhaseElaborateBehavior,
	composition.PhaseElaborateBindings,
	composition.PhaseStructuralChecks,
	composition.PhaseInstanceSets,
}

type phaseItem struct {
	phase  composition.Phase
	status string // "queued", "working", "done"
	detail string
}

type progressModel struct {
	title   string
	events  <-chan composition.PhaseEvent
	spinner spinner.Model
	prog    progress.Model
	items   []phaseItem
	index   map[composition.Phase]int
	width   int
	done    bool
}

type eventMsg composition.PhaseEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders composition
// analysis progress as events arrive on events. Callers typically wire
// composition.Composer.Progress to a channel send and pass the receiving
// end here (see cmd/rc's --ui flag handling).
func NewProgressModel(title string, events <-chan composition.PhaseEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]phaseItem, len(phases))
	index := make(map[composition.Phase]int, len(phases))
	for i, p := range phases {
		items[i] = phaseItem{phase: p, status: "queued"}
		index[p] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(composition.PhaseEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := m.width - 16
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.phase.String(), nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		if item.detail != "" {
			b.WriteString("  " + item.detail)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev composition.PhaseEvent) tea.Cmd {
	idx, ok := m.index[ev.Phase]
	if !ok {
		return nil
	}
	switch ev.Status {
	case composition.StatusStarted:
		m.items[idx].status = "working"
	case composition.StatusDone:
		m.items[idx].status = "done"
	}
	m.items[idx].detail = ev.Detail

	done := 0.0
	for _, item := range m.items {
		switch item.status {
		case "done":
			done += 1.0
		case "working":
			done += 0.5
		}
	}
	return m.prog.SetPercent(done / float64(len(m.items)))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "working":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
