package grid

import (
	"strings"
	"time"
)

// Status literals emitted by GET /simulate.
const (
	StatusNormal  = "Normal Operation"
	StatusAnomaly = "Anomaly Detected"
)

// Snapshot is one simulation/analysis cycle returned by GET /simulate.
type Snapshot struct {
	Event   *Event   `json:"event,omitempty"`
	Status  string   `json:"status"`
	Metrics *Metrics `json:"metrics,omitempty"`
	Alert   *Alert   `json:"alert,omitempty"`
}

// Event is the raw grid reading the cycle analysed.
type Event struct {
	Timestamp string  `json:"timestamp"`
	Component string  `json:"component"`
	Voltage   float64 `json:"voltage"`
	Frequency float64 `json:"frequency"`
	Latency   float64 `json:"latency"`
}

// Metrics holds signed deviations from the grid baselines.
type Metrics struct {
	VoltageDeviation   float64 `json:"voltage_deviation"`
	LatencyDeviation   float64 `json:"latency_deviation"`
	FrequencyDeviation float64 `json:"frequency_deviation"`
}

// Alert summarises the anomalies detected in the cycle.
type Alert struct {
	AnomalyDetected bool      `json:"anomaly_detected"`
	TotalAnomalies  int       `json:"total_anomalies"`
	Anomalies       []Anomaly `json:"anomalies"`
}

// Anomaly is a single detection, in the order the service ranked it.
type Anomaly struct {
	Type      string  `json:"type"`
	Severity  string  `json:"severity"`
	Deviation float64 `json:"deviation"`
}

// MetricsOrZero returns the snapshot metrics, or zero deviations when absent.
func (s *Snapshot) MetricsOrZero() Metrics {
	if s == nil || s.Metrics == nil {
		return Metrics{}
	}
	return *s.Metrics
}

// TotalAnomalies returns alert.total_anomalies, or 0 without an alert.
func (s *Snapshot) TotalAnomalies() int {
	if s == nil || s.Alert == nil {
		return 0
	}
	return s.Alert.TotalAnomalies
}

// HasAnomalies reports whether the alert section flags detected anomalies.
func (s *Snapshot) HasAnomalies() bool {
	return s != nil && s.Alert != nil && s.Alert.AnomalyDetected
}

// timestampLayouts covers RFC 3339 and the zone-less isoformat() the service emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Time parses the event timestamp. Zone-less values are read as local time.
func (e *Event) Time() (time.Time, bool) {
	if e == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(e.Timestamp)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Severity classes recognised for alert rows.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
	SeverityUnknown  = "unknown"
)

// SeverityClass folds a severity label onto one of the known classes,
// case-insensitively. Unrecognised labels map to SeverityUnknown.
func SeverityClass(severity string) string {
	switch s := strings.ToLower(strings.TrimSpace(severity)); s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s
	default:
		return SeverityUnknown
	}
}
