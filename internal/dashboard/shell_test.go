package dashboard

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

func newTestShell(backend *fakeBackend) *Shell {
	s := NewShell(backend, logger.NewBufferLogger())
	s.now = func() time.Time { return time.Date(2026, 10, 14, 9, 31, 0, 0, time.UTC) }
	return s
}

func TestShell_InitialView(t *testing.T) {
	s := newTestShell(&fakeBackend{})

	v := s.View()
	assert.Equal(t, "unknown", v.Connectivity)
	assert.Equal(t, initialBannerText, v.Banner.Text)
	assert.Equal(t, BadgeNone, v.Status.Badge)
	assert.Equal(t, initialAlertsText, v.Alerts.Placeholder)
	assert.Equal(t, initialMetricsText, v.Metrics.Voltage.Text)
	assert.False(t, v.Event.Set)
	assert.False(t, v.Busy)
	assert.True(t, s.LastUpdate().IsZero())
}

func TestShell_Start(t *testing.T) {
	t.Run("online", func(t *testing.T) {
		s := newTestShell(&fakeBackend{health: &grid.Health{Status: grid.HealthyStatus}})

		assert.Equal(t, grid.Online, s.Start(context.Background()))
		v := s.View()
		assert.Equal(t, BannerOnline, v.Banner.Text)
		assert.Equal(t, initialAlertsText, v.Alerts.Placeholder, "online probe leaves alerts alone")
	})

	t.Run("degraded is not surfaced", func(t *testing.T) {
		s := newTestShell(&fakeBackend{health: &grid.Health{Status: "booting"}})

		assert.Equal(t, grid.Degraded, s.Start(context.Background()))
		v := s.View()
		assert.Equal(t, BannerDegraded, v.Banner.Text)
		assert.Equal(t, BadgeNone, v.Status.Badge)
		assert.Empty(t, v.Alerts.Rows)
	})

	t.Run("offline is surfaced", func(t *testing.T) {
		s := newTestShell(&fakeBackend{healthErr: errors.NewConnectivityError(stderrors.New("connection refused"))})

		assert.Equal(t, grid.Offline, s.Start(context.Background()))
		v := s.View()
		assert.Equal(t, "offline", v.Connectivity)
		assert.Equal(t, ErrorBannerText, v.Banner.Text)
		assert.Equal(t, BadgeError, v.Status.Badge)
		require.Len(t, v.Alerts.Rows, 1)
		assert.Equal(t, "Health Check Failed", v.Alerts.Rows[0].Type)
	})
}

func TestShell_CompleteProbe(t *testing.T) {
	backend := &fakeBackend{health: &grid.Health{Status: grid.HealthyStatus}}
	s := newTestShell(backend)

	h, err := s.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, initialBannerText, s.View().Banner.Text, "probe alone does not paint")

	assert.Equal(t, grid.Online, s.CompleteProbe(h, err))
	assert.Equal(t, BannerOnline, s.View().Banner.Text)
	assert.Equal(t, 1, backend.healthCalls)
}

func TestShell_TriggerSuccess(t *testing.T) {
	backend := &fakeBackend{
		health: &grid.Health{Status: grid.HealthyStatus},
		snap:   anomalySnapshot(1, grid.Anomaly{Type: "Voltage Anomaly", Severity: "High", Deviation: 32.41}),
	}
	s := newTestShell(backend)
	s.Start(context.Background())

	require.NoError(t, s.OnTriggerRequested(context.Background()))

	v := s.View()
	assert.False(t, v.Busy)
	assert.Equal(t, BadgeAnomaly, v.Status.Badge)
	assert.Equal(t, "1 anomaly detected in grid operations", v.Status.Message)
	require.Len(t, v.Alerts.Rows, 1)
	assert.Equal(t, grid.SeverityHigh, v.Alerts.Rows[0].Class)
	assert.Equal(t, BannerOnline, v.Banner.Text, "a render does not touch the banner")
	assert.Equal(t, grid.Online, s.Connectivity())
	assert.Equal(t, time.Date(2026, 10, 14, 9, 31, 0, 0, time.UTC), s.LastUpdate())
	assert.Equal(t, 1, backend.simulateCalls)
}

func TestShell_TriggerHTTPError(t *testing.T) {
	backend := &fakeBackend{snapErr: errors.NewHTTPError(500)}
	s := newTestShell(backend)

	err := s.OnTriggerRequested(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrHTTP))

	v := s.View()
	assert.False(t, v.Busy, "trigger re-enabled after failure")
	assert.Equal(t, ErrorBannerText, v.Banner.Text)
	assert.Equal(t, grid.Offline, v.Banner.State)
	assert.Equal(t, BadgeError, v.Status.Badge)
	assert.Equal(t, ErrorStatusMessage, v.Status.Message)
	require.Len(t, v.Alerts.Rows, 1)
	assert.Equal(t, "HTTP error! status: 500", v.Alerts.Rows[0].Detail)
	assert.True(t, s.LastUpdate().IsZero())

	// the next press fetches again
	backend.snapErr = nil
	backend.snap = normalSnapshot()
	require.NoError(t, s.OnTriggerRequested(context.Background()))
	assert.Equal(t, BadgeNormal, s.View().Status.Badge)
	assert.Equal(t, 2, backend.simulateCalls)
}

func TestShell_TriggerRejectedWhileBusy(t *testing.T) {
	backend := &fakeBackend{snap: normalSnapshot()}
	s := newTestShell(backend)

	var nested error
	var busyDuring bool
	backend.onSimulate = func() {
		busyDuring = s.Busy()
		nested = s.OnTriggerRequested(context.Background())
	}

	require.NoError(t, s.OnTriggerRequested(context.Background()))

	assert.True(t, busyDuring)
	require.Error(t, nested)
	assert.True(t, errors.IsCode(nested, errors.ErrBusy))
	assert.Equal(t, 1, backend.simulateCalls, "rejected press issues no request")
	assert.False(t, s.Busy())
}

func TestShell_BeginComplete(t *testing.T) {
	s := newTestShell(&fakeBackend{})

	require.True(t, s.Begin())
	assert.False(t, s.Begin())
	assert.True(t, s.View().Busy)

	require.NoError(t, s.Complete(normalSnapshot(), nil))
	assert.False(t, s.Busy())
	assert.True(t, s.Begin())
}

func TestShell_PanicReleasesTrigger(t *testing.T) {
	s := newTestShell(&fakeBackend{panicMsg: "decoder blew up"})

	err := s.OnTriggerRequested(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUnknown))
	assert.False(t, s.Busy())
	assert.Equal(t, BadgeError, s.View().Status.Badge)
}

func TestShell_ViewIsACopy(t *testing.T) {
	s := newTestShell(&fakeBackend{snap: anomalySnapshot(1, grid.Anomaly{Type: "Network Anomaly", Severity: "medium", Deviation: 262.5})})
	require.NoError(t, s.OnTriggerRequested(context.Background()))

	v := s.View()
	v.Alerts.Rows[0].Type = "tampered"
	v.Status.Message = "tampered"

	fresh := s.View()
	assert.Equal(t, "Network Anomaly", fresh.Alerts.Rows[0].Type)
	assert.NotEqual(t, "tampered", fresh.Status.Message)
}
