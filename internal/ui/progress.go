package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bracketlint/internal/workspace"
)

type progressModel struct {
	title    string
	events   <-chan workspace.Event
	spinner  spinner.Model
	prog     progress.Model
	total    int
	finished int
	lastPath string
	findings int
	width    int
	done     bool
	passed   bool
}

type eventMsg workspace.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress
// from a workspace event channel.
func NewProgressModel(title string, events <-chan workspace.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(workspace.Event(msg))
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
		if m.passed {
			header = fmt.Sprintf("done: %s", header)
		} else {
			header = fmt.Sprintf("failed: %s", header)
		}
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d/%d units", m.finished, m.total)))
	if m.findings > 0 {
		findingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
		b.WriteString(findingStyle.Render(fmt.Sprintf("   %d findings", m.findings)))
	}
	if m.lastPath != "" {
		nameWidth := m.width - 24
		if nameWidth < 20 {
			nameWidth = 20
		}
		b.WriteString("   ")
		b.WriteString(truncate(m.lastPath, nameWidth))
	}
	b.WriteString("\n\n")

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

func (m *progressModel) applyEvent(ev workspace.Event) tea.Cmd {
	switch ev.Kind {
	case workspace.EventRunStarted:
		m.total = ev.Total
		// Cached units are already done.
		m.finished = ev.Total - ev.Stale
	case workspace.EventUnitFinished:
		m.finished++
		m.lastPath = ev.Path
		m.findings += ev.Diagnostics
	case workspace.EventRunFinished:
		m.finished = m.total
		m.passed = ev.Passed
	}

	if m.total > 0 {
		return m.prog.SetPercent(float64(m.finished) / float64(m.total))
	}
	return nil
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
