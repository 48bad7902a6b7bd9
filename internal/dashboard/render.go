package dashboard

import (
	"fmt"
	"math"

	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
	"github.com/gridsec/gridwatch/internal/threshold"
)

// Status and alert texts painted from a snapshot.
const (
	StatusNormalMessage = "All systems operating within normal parameters"
	NoAnomaliesMessage  = "No anomalies detected"
)

// timestampLayout matches an en-US locale date/time string.
const timestampLayout = "1/2/2006, 3:04:05 PM"

// Renderer paints a snapshot into the event, status, metrics and alert regions.
type Renderer struct {
	target RenderTarget
	log    logger.Logger
}

// NewRenderer creates a renderer that writes only to target.
func NewRenderer(target RenderTarget, log logger.Logger) *Renderer {
	return &Renderer{target: target, log: logger.OrDefault(log)}
}

// Render applies snap to the four regions. Each region updates on its own;
// a failure in one is logged and does not stop the others.
func (r *Renderer) Render(snap *grid.Snapshot) {
	if snap == nil {
		r.log.Warn("render called without a snapshot")
		return
	}
	r.region("event", func() { r.renderEvent(snap.Event) })
	r.region("status", func() { r.renderStatus(snap) })
	r.region("metrics", func() { r.renderMetrics(snap.MetricsOrZero()) })
	r.region("alerts", func() { r.renderAlerts(snap.Alert) })
}

func (r *Renderer) region(name string, paint func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("%s region render failed: %v", name, rec)
		}
	}()
	paint()
}

// renderEvent leaves the region untouched when the snapshot has no event.
func (r *Renderer) renderEvent(ev *grid.Event) {
	if ev == nil {
		return
	}
	*r.target.Event = EventRegion{
		Set:       true,
		Timestamp: formatTimestamp(ev),
		Component: ev.Component,
		Voltage:   ev.Voltage,
		Frequency: ev.Frequency,
		Latency:   ev.Latency,
	}
}

func formatTimestamp(ev *grid.Event) string {
	if t, ok := ev.Time(); ok {
		return t.Local().Format(timestampLayout)
	}
	return ev.Timestamp
}

func (r *Renderer) renderStatus(snap *grid.Snapshot) {
	switch snap.Status {
	case grid.StatusNormal:
		*r.target.Status = StatusRegion{Badge: BadgeNormal, Message: StatusNormalMessage}
	case grid.StatusAnomaly:
		*r.target.Status = StatusRegion{Badge: BadgeAnomaly, Message: AnomalyMessage(snap.TotalAnomalies())}
	default:
		r.log.Warn("unrecognized snapshot status %q", snap.Status)
		msg := "Backend returned no status"
		if snap.Status != "" {
			msg = "Unrecognized status: " + snap.Status
		}
		*r.target.Status = StatusRegion{Badge: BadgeUnknown, Message: msg}
	}
}

// AnomalyMessage words the anomaly count: "1 anomaly", otherwise "N anomalies".
func AnomalyMessage(count int) string {
	noun := "anomalies"
	if count == 1 {
		noun = "anomaly"
	}
	return fmt.Sprintf("%d %s detected in grid operations", count, noun)
}

func (r *Renderer) renderMetrics(m grid.Metrics) {
	*r.target.Metrics = MetricsRegion{
		Voltage:   metricValue(m.VoltageDeviation, "V", threshold.Voltage),
		Latency:   metricValue(m.LatencyDeviation, "ms", threshold.Latency),
		Frequency: metricValue(m.FrequencyDeviation, "Hz", threshold.Frequency),
	}
}

func metricValue(v float64, unit string, pair threshold.Pair) MetricValue {
	return MetricValue{
		Text:  FormatSigned(v, unit),
		Value: v,
		Tier:  pair.Classify(math.Abs(v)),
	}
}

// renderAlerts replaces the region wholesale so repeated renders never accumulate rows.
func (r *Renderer) renderAlerts(alert *grid.Alert) {
	if alert == nil || !alert.AnomalyDetected {
		*r.target.Alerts = AlertsRegion{Placeholder: NoAnomaliesMessage}
		return
	}

	rows := make([]AlertRow, 0, len(alert.Anomalies))
	for _, a := range alert.Anomalies {
		rows = append(rows, AlertRow{
			Class:    grid.SeverityClass(a.Severity),
			Type:     a.Type,
			Severity: a.Severity,
			Detail:   "Deviation: " + FormatNumber(a.Deviation),
		})
	}
	*r.target.Alerts = AlertsRegion{Rows: rows}
}
