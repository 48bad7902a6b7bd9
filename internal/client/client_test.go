package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithHTTPClient(srv.Client()), WithLogger(logger.Noop())}, opts...)
	c, err := New(srv.URL+"/", opts...)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://grid.example.com", "http://", "::"} {
		t.Run(raw, func(t *testing.T) {
			_, err := New(raw)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("https://cyber-production-7ec6.up.railway.app/")
	require.NoError(t, err)
	assert.Equal(t, "https://cyber-production-7ec6.up.railway.app", c.BaseURL())
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathHealth, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"status":"Smart Grid Agentic Framework Running","version":"1.0.0"}`))
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Healthy())
	assert.Equal(t, "1.0.0", h.Version)
}

func TestSimulate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSimulate, r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"Normal Operation","metrics":{"voltage_deviation":-3.5,"latency_deviation":12,"frequency_deviation":0.1}}`))
	})

	s, err := c.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, grid.StatusNormal, s.Status)
	require.NotNil(t, s.Metrics)
	assert.Equal(t, -3.5, s.Metrics.VoltageDeviation)
	assert.Nil(t, s.Event)
	assert.Nil(t, s.Alert)
}

func TestSimulate_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Simulation error: boom"}`, http.StatusInternalServerError)
	})

	s, err := c.Simulate(context.Background())
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.IsCode(err, errors.ErrHTTP))

	code, ok := errors.HTTPStatus(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "HTTP error! status: 500", errors.Human(err))
}

func TestSimulate_ParseError(t *testing.T) {
	bodies := map[string]string{
		"html":      "<html>gateway</html>",
		"truncated": `{"status": "Normal Op`,
		"array":     `[1, 2, 3]`,
		"empty":     ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := c.Simulate(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrParse), "got %v", err)
		})
	}
}

func TestSimulate_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.Simulate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
	assert.True(t, errors.IsCode(err, errors.ErrHTTP))
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithLogger(logger.Noop()))
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConnectivity))
}

func TestSystemInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSystemInfo, r.URL.Path)
		_, _ = w.Write([]byte(`{
			"framework": "AI-Enabled Cybersecurity Framework for Smart Grid",
			"architecture": {"active_layers": ["Cloud Foundation (Chunk 0)"], "defined_layers": ["Threat Modeling Layer"]},
			"agents": {"active": ["DataFusionAgent"], "placeholder": ["CascadePredictorAgent"]}
		}`))
	})

	info, err := c.SystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AI-Enabled Cybersecurity Framework for Smart Grid", info.Framework)
	assert.Equal(t, []string{"DataFusionAgent"}, info.Agents.Active)
	assert.Equal(t, []string{"Threat Modeling Layer"}, info.Architecture.DefinedLayers)
}

func TestRequestLogging(t *testing.T) {
	buf := logger.NewBufferLogger()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}, WithLogger(buf))

	_, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, buf.HasLevel("debug"))
}

func TestHealth_BodyShapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  string
		wantVersion string
		wantChunks  []string
		wantParse   bool
	}{
		{
			name:        "service payload",
			body:        `{"status":"Smart Grid Agentic Framework Running","version":"1.0.0","chunks_active":["0","1","2"],"timestamp":"2026-10-14T09:30:00"}`,
			wantStatus:  grid.HealthyStatus,
			wantVersion: "1.0.0",
			wantChunks:  []string{"0", "1", "2"},
		},
		{
			name:       "numeric version dropped",
			body:       `{"status":"Smart Grid Agentic Framework Running","version":1}`,
			wantStatus: grid.HealthyStatus,
		},
		{
			name:       "chunks as string dropped",
			body:       `{"status":"Smart Grid Agentic Framework Running","chunks_active":"0,1,2"}`,
			wantStatus: grid.HealthyStatus,
		},
		{
			name:       "mixed chunk types keep strings",
			body:       `{"status":"Smart Grid Agentic Framework Running","chunks_active":["0",1,null,"2"]}`,
			wantStatus: grid.HealthyStatus,
			wantChunks: []string{"0", "2"},
		},
		{name: "numeric status", body: `{"status":5}`},
		{name: "json array", body: `[1,2]`},
		{name: "json string", body: `"ok"`},
		{name: "html", body: "<html>gateway</html>", wantParse: true},
		{name: "truncated", body: `{"status":"Smart Grid`, wantParse: true},
		{name: "empty", body: "", wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			h, err := c.Health(context.Background())
			if tt.wantParse {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrParse), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, h)
			assert.Equal(t, tt.wantStatus, h.Status)
			assert.Equal(t, tt.wantVersion, h.Version)
			assert.Equal(t, tt.wantChunks, h.ChunksActive)
		})
	}
}

func TestSimulate_IgnoresUnknownMetricFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"Anomaly Detected","metrics":{"voltage_deviation":32.4,"latency_deviation":0,"frequency_deviation":0,"voltage_status":1,"latency_status":{"x":true}}}`))
	})

	s, err := c.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 32.4, s.MetricsOrZero().VoltageDeviation)
}
