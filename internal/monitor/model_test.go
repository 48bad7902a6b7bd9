package monitor

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// stubBackend returns canned results and counts requests.
type stubBackend struct {
	health    *grid.Health
	healthErr error
	snap      *grid.Snapshot
	snapErr   error

	simulateCalls int
}

func (s *stubBackend) Health(ctx context.Context) (*grid.Health, error) {
	return s.health, s.healthErr
}

func (s *stubBackend) Simulate(ctx context.Context) (*grid.Snapshot, error) {
	s.simulateCalls++
	return s.snap, s.snapErr
}

func anomalySnapshot() *grid.Snapshot {
	return &grid.Snapshot{
		Status: grid.StatusAnomaly,
		Event: &grid.Event{
			Timestamp: "2026-10-14T09:30:15",
			Component: "Substation",
			Voltage:   258.4,
			Frequency: 49.2,
			Latency:   95,
		},
		Metrics: &grid.Metrics{VoltageDeviation: 28.4, LatencyDeviation: 45, FrequencyDeviation: -0.8},
		Alert: &grid.Alert{
			AnomalyDetected: true,
			TotalAnomalies:  2,
			Anomalies: []grid.Anomaly{
				{Type: "Voltage Anomaly", Severity: "High", Deviation: 28.4},
				{Type: "Frequency Anomaly", Severity: "Medium", Deviation: -0.8},
			},
		},
	}
}

func newTestModel(backend *stubBackend, interval time.Duration) Model {
	shell := dashboard.NewShell(backend, logger.Noop())
	return NewModel(shell, "http://grid.test", interval)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update feeds msg to m and returns the concrete model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestNewModel(t *testing.T) {
	m := newTestModel(&stubBackend{}, 0)

	assert.True(t, m.probing)
	assert.False(t, m.showHelp)
	assert.NotNil(t, m.Shell())
	assert.NotNil(t, m.Init())
	assert.Nil(t, m.refreshTickCmd(), "no refresh timer without an interval")
}

func TestModel_HealthMsg(t *testing.T) {
	tests := []struct {
		name  string
		msg   healthMsg
		state grid.ConnectivityState
		text  string
	}{
		{"online", healthMsg{health: &grid.Health{Status: grid.HealthyStatus}}, grid.Online, dashboard.BannerOnline},
		{"degraded", healthMsg{health: &grid.Health{Status: "warming up"}}, grid.Degraded, dashboard.BannerDegraded},
		{"offline", healthMsg{err: errors.NewConnectivityError(stderrors.New("refused"))}, grid.Offline, dashboard.ErrorBannerText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(&stubBackend{}, 0)

			m, cmd := update(t, m, tt.msg)
			assert.Nil(t, cmd)
			assert.False(t, m.probing)
			assert.Equal(t, tt.state, m.Shell().Connectivity())
			assert.Equal(t, tt.text, m.Shell().View().Banner.Text)
		})
	}
}

func TestModel_ProbeCmd(t *testing.T) {
	m := newTestModel(&stubBackend{health: &grid.Health{Status: grid.HealthyStatus, Version: "1.0.0"}}, 0)

	msg := m.probeCmd()()
	hm, ok := msg.(healthMsg)
	require.True(t, ok)
	assert.NoError(t, hm.err)
	assert.Equal(t, "1.0.0", hm.health.Version)
	assert.Equal(t, grid.Unknown, m.Shell().Connectivity(), "probe command does not paint")
}

func TestModel_TriggerFlow(t *testing.T) {
	for _, k := range []string{"s", " ", "enter"} {
		t.Run(k, func(t *testing.T) {
			backend := &stubBackend{snap: anomalySnapshot()}
			m := newTestModel(backend, 0)

			m, cmd := update(t, m, key(k))
			require.NotNil(t, cmd)
			assert.True(t, m.Shell().Busy())
			assert.Contains(t, m.View(), "Running simulation...")

			msg := cmd()
			require.IsType(t, fetchResultMsg{}, msg)

			m, _ = update(t, m, msg)
			assert.False(t, m.Shell().Busy())
			v := m.Shell().View()
			assert.Equal(t, dashboard.BadgeAnomaly, v.Status.Badge)
			assert.Equal(t, "2 anomalies detected in grid operations", v.Status.Message)
			assert.Len(t, v.Alerts.Rows, 2)
			assert.Equal(t, 1, backend.simulateCalls)
		})
	}
}

func TestModel_TriggerIgnoredWhileBusy(t *testing.T) {
	backend := &stubBackend{snap: anomalySnapshot()}
	m := newTestModel(backend, 0)

	m, first := update(t, m, key("s"))
	require.NotNil(t, first)

	m, second := update(t, m, key(" "))
	assert.Nil(t, second, "second press while busy issues no request")

	m, _ = update(t, m, first())
	assert.False(t, m.Shell().Busy())
	assert.Equal(t, 1, backend.simulateCalls)
}

func TestModel_FetchError(t *testing.T) {
	backend := &stubBackend{snapErr: errors.NewHTTPError(500)}
	m := newTestModel(backend, 0)

	m, cmd := update(t, m, key("s"))
	m, _ = update(t, m, cmd())

	assert.False(t, m.Shell().Busy(), "trigger re-enabled after a failure")
	v := m.Shell().View()
	assert.Equal(t, dashboard.BadgeError, v.Status.Badge)
	assert.Equal(t, dashboard.ErrorBannerText, v.Banner.Text)
	require.Len(t, v.Alerts.Rows, 1)
	assert.Equal(t, "HTTP error! status: 500", v.Alerts.Rows[0].Detail)

	_, again := update(t, m, key("s"))
	assert.NotNil(t, again)
}

func TestModel_RefreshTick(t *testing.T) {
	backend := &stubBackend{snap: anomalySnapshot()}
	m := newTestModel(backend, 5*time.Second)
	require.NotNil(t, m.refreshTickCmd())

	m, cmd := update(t, m, refreshTickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.True(t, m.Shell().Busy(), "idle tick starts a fetch")

	// a tick during the outstanding fetch only reschedules
	m, _ = update(t, m, refreshTickMsg(time.Now()))
	assert.True(t, m.Shell().Busy())
	assert.Equal(t, 0, backend.simulateCalls, "fetch command has not run yet")
}

func TestModel_SpinnerTick(t *testing.T) {
	m := newTestModel(&stubBackend{}, 0)

	_, cmd := update(t, m, spinner.TickMsg{ID: m.spinner.ID(), Time: time.Now()})
	assert.NotNil(t, cmd, "spinner keeps ticking")
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(&stubBackend{}, 0)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.True(t, m.twoColumn())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 99, Height: 40})
	assert.False(t, m.twoColumn())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(&stubBackend{}, 0)

			m, cmd := update(t, m, key(k))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.True(t, m.quitting)
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_Help(t *testing.T) {
	m := newTestModel(&stubBackend{}, 0)

	m, _ = update(t, m, key("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, key("esc"))
	assert.False(t, m.showHelp)

	m, _ = update(t, m, key("?"))
	m, _ = update(t, m, key("?"))
	assert.False(t, m.showHelp)
}

func TestModel_UnhandledKey(t *testing.T) {
	m := newTestModel(&stubBackend{}, 0)

	handled, cmd := m.HandleKeyMsg(key("x"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestModel_UpdatedText(t *testing.T) {
	m := newTestModel(&stubBackend{snap: anomalySnapshot()}, 0)
	assert.Equal(t, "no data yet", m.UpdatedText())

	require.NoError(t, m.Shell().OnTriggerRequested(context.Background()))
	last := m.Shell().LastUpdate()
	m.now = func() time.Time { return last.Add(42 * time.Second) }

	assert.Equal(t, "updated 42 seconds ago", m.UpdatedText())
}
