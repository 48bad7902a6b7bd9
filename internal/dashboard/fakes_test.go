package dashboard

import (
	"context"

	"github.com/gridsec/gridwatch/internal/grid"
)

// fakeBackend returns canned responses and counts calls.
type fakeBackend struct {
	health    *grid.Health
	healthErr error
	snap      *grid.Snapshot
	snapErr   error
	panicMsg  string

	healthCalls   int
	simulateCalls int

	// onSimulate runs inside Simulate, before the canned result is returned.
	onSimulate func()
}

func (f *fakeBackend) Health(ctx context.Context) (*grid.Health, error) {
	f.healthCalls++
	return f.health, f.healthErr
}

func (f *fakeBackend) Simulate(ctx context.Context) (*grid.Snapshot, error) {
	f.simulateCalls++
	if f.onSimulate != nil {
		f.onSimulate()
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.snap, f.snapErr
}

func anomalySnapshot(total int, anomalies ...grid.Anomaly) *grid.Snapshot {
	return &grid.Snapshot{
		Status: grid.StatusAnomaly,
		Event: &grid.Event{
			Timestamp: "2026-10-14T09:30:15.123456",
			Component: "Transformer",
			Voltage:   262.41,
			Frequency: 48.77,
			Latency:   312.5,
		},
		Metrics: &grid.Metrics{
			VoltageDeviation:   32.41,
			LatencyDeviation:   262.5,
			FrequencyDeviation: -1.23,
		},
		Alert: &grid.Alert{
			AnomalyDetected: true,
			TotalAnomalies:  total,
			Anomalies:       anomalies,
		},
	}
}

func normalSnapshot() *grid.Snapshot {
	return &grid.Snapshot{
		Status: grid.StatusNormal,
		Event: &grid.Event{
			Timestamp: "2026-10-14T09:31:00",
			Component: "DER",
			Voltage:   231.2,
			Frequency: 50.01,
			Latency:   45.3,
		},
		Metrics: &grid.Metrics{
			VoltageDeviation:   1.2,
			LatencyDeviation:   -4.7,
			FrequencyDeviation: 0.01,
		},
	}
}
