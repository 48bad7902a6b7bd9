package dashboard

import (
	"strconv"

	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/threshold"
)

// Badge is the visual state of the status region.
type Badge int

const (
	BadgeNone Badge = iota
	BadgeNormal
	BadgeAnomaly
	BadgeError
	BadgeUnknown
)

// String returns the style class for the badge.
func (b Badge) String() string {
	switch b {
	case BadgeNormal:
		return "normal"
	case BadgeAnomaly:
		return "anomaly"
	case BadgeError:
		return "error"
	case BadgeUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Label returns the text painted inside the badge.
func (b Badge) Label() string {
	switch b {
	case BadgeNormal:
		return "✓ NORMAL"
	case BadgeAnomaly:
		return "⚠ ANOMALY"
	case BadgeError:
		return "⚠ ERROR"
	case BadgeUnknown:
		return "? UNKNOWN"
	default:
		return "○ IDLE"
	}
}

// MarshalText encodes the badge by its class name.
func (b Badge) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Banner is the connectivity banner at the top of the dashboard.
type Banner struct {
	State grid.ConnectivityState `json:"-"`
	Text  string                 `json:"text"`
}

// Banner colors by connectivity state.
const (
	BannerGreen = "#10b981"
	BannerAmber = "#f59e0b"
	BannerRed   = "#ef4444"
	BannerGray  = "#6b7280"
)

// Color returns the banner background for its state.
func (b Banner) Color() string {
	switch b.State {
	case grid.Online:
		return BannerGreen
	case grid.Degraded:
		return BannerAmber
	case grid.Offline:
		return BannerRed
	default:
		return BannerGray
	}
}

// EventRegion shows the raw reading of the last snapshot that carried one.
type EventRegion struct {
	Set       bool    `json:"set"`
	Timestamp string  `json:"timestamp,omitempty"`
	Component string  `json:"component,omitempty"`
	Voltage   float64 `json:"voltage"`
	Frequency float64 `json:"frequency"`
	Latency   float64 `json:"latency"`
}

// StatusRegion is the status badge plus its message line.
type StatusRegion struct {
	Badge   Badge  `json:"badge"`
	Message string `json:"message"`
}

// MetricValue is one colored deviation readout.
type MetricValue struct {
	Text  string         `json:"text"`
	Value float64        `json:"value"`
	Tier  threshold.Tier `json:"tier"`
}

// MetricsRegion holds the three deviation readouts.
type MetricsRegion struct {
	Voltage   MetricValue `json:"voltage"`
	Latency   MetricValue `json:"latency"`
	Frequency MetricValue `json:"frequency"`
}

// AlertRow is a single entry in the alerts region.
type AlertRow struct {
	Class    string `json:"class"`
	Type     string `json:"type"`
	Severity string `json:"severity,omitempty"`
	Detail   string `json:"detail"`
}

// AlertsRegion is either a placeholder line or an ordered list of rows.
type AlertsRegion struct {
	Placeholder string     `json:"placeholder,omitempty"`
	Rows        []AlertRow `json:"rows,omitempty"`
}

// Trigger is the simulate control. Busy while a fetch is outstanding.
type Trigger struct {
	busy bool
}

// Acquire marks the trigger busy. Returns false if it already was.
func (t *Trigger) Acquire() bool {
	if t.busy {
		return false
	}
	t.busy = true
	return true
}

// Release re-enables the trigger.
func (t *Trigger) Release() {
	t.busy = false
}

// Busy reports whether a fetch is outstanding.
func (t *Trigger) Busy() bool {
	return t.busy
}

// ViewState is a copy of everything currently painted.
type ViewState struct {
	Connectivity string        `json:"connectivity"`
	Banner       Banner        `json:"banner"`
	Event        EventRegion   `json:"event"`
	Status       StatusRegion  `json:"status"`
	Metrics      MetricsRegion `json:"metrics"`
	Alerts       AlertsRegion  `json:"alerts"`
	Busy         bool          `json:"busy"`
}

// FormatNumber renders a reading the way the service reports it:
// shortest representation, no exponent, no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSigned prefixes positive values with "+" and appends unit.
func FormatSigned(v float64, unit string) string {
	sign := ""
	if v > 0 {
		sign = "+"
	}
	return sign + FormatNumber(v) + " " + unit
}
