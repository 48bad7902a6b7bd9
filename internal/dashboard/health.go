package dashboard

import (
	"context"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// Banner texts painted by the health probe.
const (
	BannerOnline   = "System Online & Ready"
	BannerDegraded = "System Status Unknown"
	BannerOffline  = "Backend Offline"
)

// HealthChecker fetches the backend health document.
type HealthChecker interface {
	Health(ctx context.Context) (*grid.Health, error)
}

// HealthMonitor probes the backend once and paints the connectivity banner.
type HealthMonitor struct {
	checker HealthChecker
	banner  *Banner
	log     logger.Logger
}

// NewHealthMonitor creates a monitor that writes only to banner.
func NewHealthMonitor(checker HealthChecker, banner *Banner, log logger.Logger) *HealthMonitor {
	return &HealthMonitor{checker: checker, banner: banner, log: logger.OrDefault(log)}
}

// Probe issues one health request and derives the connectivity state.
// The banner is updated before returning. A non-nil error means Offline.
// There is no retry.
func (m *HealthMonitor) Probe(ctx context.Context) (grid.ConnectivityState, error) {
	return m.Judge(m.checker.Health(ctx))
}

// Judge derives the connectivity state from a health response and paints
// the banner. Probe is Judge over a live request.
func (m *HealthMonitor) Judge(h *grid.Health, err error) (grid.ConnectivityState, error) {
	if err != nil {
		m.paint(grid.Offline, BannerOffline)
		m.log.Error("health check failed: %s", errors.Human(err))
		return grid.Offline, errors.WrapWithCode(err, errors.ErrConnectivity,
			"Health check failed: "+errors.Human(err),
			"Check that the backend is running, then restart gridwatch")
	}

	if h == nil {
		m.paint(grid.Offline, BannerOffline)
		return grid.Offline, errors.New(errors.ErrConnectivity, "Health check returned no body", "")
	}

	if h.Healthy() {
		m.paint(grid.Online, BannerOnline)
		m.log.Debug("backend online (version %q)", h.Version)
		return grid.Online, nil
	}

	m.paint(grid.Degraded, BannerDegraded)
	m.log.Warn("backend reachable but reported status %q", h.Status)
	return grid.Degraded, nil
}

func (m *HealthMonitor) paint(state grid.ConnectivityState, text string) {
	m.banner.State = state
	m.banner.Text = text
}
