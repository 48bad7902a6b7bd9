package grid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anomalyBody = `{
  "status": "Anomaly Detected",
  "event": {"component": "Substation", "voltage": 262.4, "frequency": 48.7, "latency": 310.2, "timestamp": "2026-10-14T09:30:15.123456"},
  "alert": {
    "anomaly_detected": true,
    "anomalies": [
      {"type": "Voltage Anomaly", "severity": "High", "deviation": 32.4},
      {"type": "Network Anomaly", "severity": "High", "deviation": 260.2}
    ],
    "total_anomalies": 2
  },
  "metrics": {"voltage_deviation": 32.4, "latency_deviation": 260.2, "frequency_deviation": -1.3, "voltage_status": "abnormal", "latency_status": "abnormal"}
}`

func TestSnapshot_DecodeAnomaly(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(anomalyBody), &s))

	assert.Equal(t, StatusAnomaly, s.Status)
	require.NotNil(t, s.Event)
	assert.Equal(t, "Substation", s.Event.Component)
	require.NotNil(t, s.Alert)
	assert.True(t, s.HasAnomalies())
	assert.Equal(t, 2, s.TotalAnomalies())
	require.Len(t, s.Alert.Anomalies, 2)
	assert.Equal(t, "Voltage Anomaly", s.Alert.Anomalies[0].Type)
	assert.Equal(t, "Network Anomaly", s.Alert.Anomalies[1].Type)
	assert.Equal(t, -1.3, s.MetricsOrZero().FrequencyDeviation)
}

func TestSnapshot_OptionalSections(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"status": "Normal Operation"}`), &s))

	assert.Nil(t, s.Event)
	assert.Nil(t, s.Metrics)
	assert.Nil(t, s.Alert)
	assert.Equal(t, Metrics{}, s.MetricsOrZero())
	assert.Equal(t, 0, s.TotalAnomalies())
	assert.False(t, s.HasAnomalies())

	var nilSnap *Snapshot
	assert.Equal(t, Metrics{}, nilSnap.MetricsOrZero())
	assert.Equal(t, 0, nilSnap.TotalAnomalies())
}

func TestEvent_Time(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		ok    bool
		check func(t *testing.T, got time.Time)
	}{
		{
			name: "naive isoformat with micros",
			raw:  "2026-10-14T09:30:15.123456",
			ok:   true,
			check: func(t *testing.T, got time.Time) {
				assert.Equal(t, 9, got.Hour())
				assert.Equal(t, 15, got.Second())
				assert.Equal(t, time.Local, got.Location())
			},
		},
		{
			name: "rfc3339 with zone",
			raw:  "2026-10-14T09:30:15Z",
			ok:   true,
			check: func(t *testing.T, got time.Time) {
				assert.Equal(t, 2026, got.UTC().Year())
			},
		},
		{name: "naive seconds", raw: "2026-10-14T09:30:15", ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := (&Event{Timestamp: tt.raw}).Time()
			assert.Equal(t, tt.ok, ok)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}

	var nilEvent *Event
	_, ok := nilEvent.Time()
	assert.False(t, ok)
}

func TestSeverityClass(t *testing.T) {
	tests := map[string]string{
		"High":       SeverityHigh,
		"MEDIUM":     SeverityMedium,
		"low":        SeverityLow,
		" Critical ": SeverityCritical,
		"severe":     SeverityUnknown,
		"":           SeverityUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, SeverityClass(in), "input %q", in)
	}
}

func TestHealth(t *testing.T) {
	var h Health
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Smart Grid Agentic Framework Running","version":"1.0.0","chunks_active":["0","1","2"]}`), &h))

	assert.True(t, h.Healthy())
	assert.Equal(t, []string{"0", "1", "2"}, h.ChunksActive)
	assert.False(t, (&Health{Status: "starting"}).Healthy())

	var nilHealth *Health
	assert.False(t, nilHealth.Healthy())
}

func TestConnectivityState_String(t *testing.T) {
	assert.Equal(t, "online", Online.String())
	assert.Equal(t, "degraded", Degraded.String())
	assert.Equal(t, "offline", Offline.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", ConnectivityState(42).String())
}
