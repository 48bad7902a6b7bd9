package grid

// HealthyStatus is the status field GET / returns when the framework is up.
const HealthyStatus = "Smart Grid Agentic Framework Running"

// Health is the body of GET /.
type Health struct {
	Status       string   `json:"status"`
	Version      string   `json:"version,omitempty"`
	ChunksActive []string `json:"chunks_active,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
}

// Healthy reports whether the body confirms a running framework.
func (h *Health) Healthy() bool {
	return h != nil && h.Status == HealthyStatus
}

// ConnectivityState is the dashboard's belief about the backend.
type ConnectivityState int

const (
	// Unknown is the state before the startup probe settles.
	Unknown ConnectivityState = iota
	Online
	Degraded
	Offline
)

// String returns a lowercase label for the state.
func (s ConnectivityState) String() string {
	switch s {
	case Online:
		return "online"
	case Degraded:
		return "degraded"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// SystemInfo is the body of GET /system-info.
type SystemInfo struct {
	Framework    string       `json:"framework"`
	Architecture Architecture `json:"architecture"`
	Agents       Agents       `json:"agents"`
}

// Architecture lists the framework layers.
type Architecture struct {
	ActiveLayers  []string `json:"active_layers"`
	DefinedLayers []string `json:"defined_layers"`
}

// Agents lists the analysis agents by readiness.
type Agents struct {
	Active      []string `json:"active"`
	Placeholder []string `json:"placeholder"`
}
