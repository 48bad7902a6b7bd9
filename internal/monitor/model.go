package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/grid"
)

// TwoColumnWidth is the terminal width at which cards are laid out side by side.
const TwoColumnWidth = 100

// Model is the Bubble Tea model for the grid dashboard. All painted state
// lives in the Shell; the model only adds terminal concerns (size, help,
// spinner) and turns network calls into commands.
type Model struct {
	shell    *dashboard.Shell
	baseURL  string
	interval time.Duration

	spinner  spinner.Model
	width    int
	height   int
	showHelp bool
	quitting bool
	probing  bool

	now func() time.Time
}

// healthMsg carries the startup health response.
type healthMsg struct {
	health *grid.Health
	err    error
}

// fetchResultMsg carries the outcome of one snapshot request.
type fetchResultMsg struct {
	snap *grid.Snapshot
	err  error
}

// refreshTickMsg signals an auto-refresh interval elapsed.
type refreshTickMsg time.Time

// NewModel creates a dashboard over shell. interval enables auto-refresh
// when positive. baseURL is only displayed.
func NewModel(shell *dashboard.Shell, baseURL string, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = BusySpinner
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		shell:    shell,
		baseURL:  baseURL,
		interval: interval,
		spinner:  sp,
		probing:  true,
		now:      time.Now,
	}
}

// Init starts the health probe, the spinner and, if enabled, the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.probeCmd(),
		m.spinner.Tick,
		m.refreshTickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case healthMsg:
		m.probing = false
		m.shell.CompleteProbe(msg.health, msg.err)

	case fetchResultMsg:
		_ = m.shell.Complete(msg.snap, msg.err)

	case refreshTickMsg:
		var fetch tea.Cmd
		if !m.shell.Busy() {
			fetch = m.triggerCmd()
		}
		return m, tea.Batch(fetch, m.refreshTickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Shell returns the dashboard state the model drives.
func (m Model) Shell() *dashboard.Shell {
	return m.shell
}

// triggerCmd acquires the trigger and returns the fetch command, or nil when
// a fetch is already outstanding.
func (m Model) triggerCmd() tea.Cmd {
	if !m.shell.Begin() {
		return nil
	}
	shell := m.shell
	return func() tea.Msg {
		snap, err := shell.Fetch(context.Background())
		return fetchResultMsg{snap: snap, err: err}
	}
}

// probeCmd runs the health request off the update loop.
func (m Model) probeCmd() tea.Cmd {
	shell := m.shell
	return func() tea.Msg {
		h, err := shell.Probe(context.Background())
		return healthMsg{health: h, err: err}
	}
}

// refreshTickCmd schedules the next auto-refresh, or nil when disabled.
func (m Model) refreshTickCmd() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// twoColumn reports whether the layout puts cards side by side.
func (m Model) twoColumn() bool {
	return m.width >= TwoColumnWidth
}
