package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	healthyBody    = `{"status":"Smart Grid Agentic Framework Running","version":"1.0.0","chunks_active":["Chunk 0","Chunk 1"]}`
	normalBody     = `{"event":{"timestamp":"2024-05-01T12:00:00Z","component":"Substation-7","voltage":230.5,"frequency":50.01,"latency":12},"status":"Normal Operation","metrics":{"voltage_deviation":0.5,"latency_deviation":-2,"frequency_deviation":0.01}}`
	anomalyBody    = `{"status":"Anomaly Detected","metrics":{"voltage_deviation":25.5,"latency_deviation":80,"frequency_deviation":0.2},"alert":{"anomaly_detected":true,"total_anomalies":2,"anomalies":[{"type":"Voltage Spike","severity":"HIGH","deviation":25.5},{"type":"Latency Surge","severity":"MEDIUM","deviation":80}]}}`
	systemInfoBody = `{"framework":"AI-Enabled Cybersecurity Framework for Smart Grid","architecture":{"active_layers":["Cloud Foundation (Chunk 0)"],"defined_layers":["Threat Modeling Layer"]},"agents":{"active":["DataFusionAgent"],"placeholder":["CascadePredictorAgent"]}}`
)

// backend routes the three service endpoints to fixed responses. A zero
// status means 200.
type backend struct {
	health, simulate, info       string
	healthStatus, simulateStatus int
}

func (b backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	write := func(status int, body string) {
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte(body))
	}
	switch r.URL.Path {
	case "/":
		write(b.healthStatus, b.health)
	case "/simulate":
		write(b.simulateStatus, b.simulate)
	case "/system-info":
		write(0, b.info)
	default:
		http.NotFound(w, r)
	}
}

// setupCommandEnv isolates a command test: an empty working directory and
// home, no GRIDWATCH_ environment, and --base-url pointing at handler.
func setupCommandEnv(t *testing.T, handler http.Handler) string {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"GRIDWATCH_BASE_URL", "GRIDWATCH_TIMEOUT", "GRIDWATCH_REFRESH_INTERVAL", "GRIDWATCH_OUTPUT_COLOR", "GRIDWATCH_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	resetFlags(t)
	baseURLFlag = srv.URL
	return srv.URL
}

// resetFlags clears the package-level flag values and restores them after t.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := []string{cfgFile, baseURLFlag, timeoutFlag}
	savedNoColor, savedVerbose := noColor, verbose
	t.Cleanup(func() {
		cfgFile, baseURLFlag, timeoutFlag = saved[0], saved[1], saved[2]
		noColor, verbose = savedNoColor, savedVerbose
	})
	cfgFile, baseURLFlag, timeoutFlag = "", "", ""
	noColor, verbose = false, false
}

// decodeEnvelope parses --json output into a generic envelope.
func decodeEnvelope(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &env), "output: %s", data)
	return env
}

// dig walks nested JSON objects by key.
func dig(t *testing.T, v interface{}, keys ...string) interface{} {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]interface{})
		require.True(t, ok, "expected object at %q, got %T", k, v)
		v = m[k]
	}
	return v
}
