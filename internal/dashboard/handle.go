package dashboard

import "github.com/gridsec/gridwatch/internal/grid"

// Initial region contents before the first probe and fetch settle.
const (
	initialBannerText  = "Connecting to backend..."
	initialStatusText  = "Awaiting first simulation"
	initialAlertsText  = "Run a simulation to analyse grid activity"
	initialMetricsText = "--"
)

// Handle references every painted region. Components receive only the
// slice they write to; the Handle itself is owned by the Shell.
type Handle struct {
	Banner  *Banner
	Event   *EventRegion
	Status  *StatusRegion
	Metrics *MetricsRegion
	Alerts  *AlertsRegion
	Trigger *Trigger
}

// NewHandle returns a handle with every region at its initial contents.
func NewHandle() *Handle {
	placeholder := MetricValue{Text: initialMetricsText}
	return &Handle{
		Banner:  &Banner{State: grid.Unknown, Text: initialBannerText},
		Event:   &EventRegion{},
		Status:  &StatusRegion{Badge: BadgeNone, Message: initialStatusText},
		Metrics: &MetricsRegion{Voltage: placeholder, Latency: placeholder, Frequency: placeholder},
		Alerts:  &AlertsRegion{Placeholder: initialAlertsText},
		Trigger: &Trigger{},
	}
}

// RenderTarget is the slice of the handle the Renderer paints.
type RenderTarget struct {
	Event   *EventRegion
	Status  *StatusRegion
	Metrics *MetricsRegion
	Alerts  *AlertsRegion
}

// SurfaceTarget is the slice of the handle the Surfacer paints.
type SurfaceTarget struct {
	Banner *Banner
	Status *StatusRegion
	Alerts *AlertsRegion
}

// RenderSlice returns the regions a snapshot render touches.
func (h *Handle) RenderSlice() RenderTarget {
	return RenderTarget{Event: h.Event, Status: h.Status, Metrics: h.Metrics, Alerts: h.Alerts}
}

// SurfaceSlice returns the regions an error surface touches.
func (h *Handle) SurfaceSlice() SurfaceTarget {
	return SurfaceTarget{Banner: h.Banner, Status: h.Status, Alerts: h.Alerts}
}

// View returns a deep copy of the painted state.
func (h *Handle) View() ViewState {
	alerts := *h.Alerts
	if h.Alerts.Rows != nil {
		alerts.Rows = append([]AlertRow(nil), h.Alerts.Rows...)
	}
	return ViewState{
		Connectivity: h.Banner.State.String(),
		Banner:       *h.Banner,
		Event:        *h.Event,
		Status:       *h.Status,
		Metrics:      *h.Metrics,
		Alerts:       alerts,
		Busy:         h.Trigger.Busy(),
	}
}
