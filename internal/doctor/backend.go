package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
)

// Service is the slice of the analysis service client the backend checks use.
type Service interface {
	Health(ctx context.Context) (*grid.Health, error)
	Simulate(ctx context.Context) (*grid.Snapshot, error)
	SystemInfo(ctx context.Context) (*grid.SystemInfo, error)
}

// SlowResponse is the latency above which a passing endpoint warns.
const SlowResponse = 3 * time.Second

// HealthCheck probes GET / and judges the status it reports.
type HealthCheck struct {
	Service Service
}

func (c *HealthCheck) Name() string     { return "backend_health" }
func (c *HealthCheck) Category() string { return CategoryBackend }

func (c *HealthCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	h, err := c.Service.Health(ctx)
	if err != nil {
		return failed(c.Name(), "Health endpoint", err)
	}
	if !h.Healthy() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Backend reachable but reports %q", h.Status),
			Suggestion: "The framework may still be starting up",
		}
	}

	msg := "Backend online"
	if h.Version != "" {
		msg += " (version " + h.Version + ")"
	}
	return timed(c.Name(), msg, time.Since(start))
}

// SimulateCheck runs one simulation cycle and checks the snapshot decodes.
type SimulateCheck struct {
	Service Service
}

func (c *SimulateCheck) Name() string     { return "backend_simulate" }
func (c *SimulateCheck) Category() string { return CategoryBackend }

func (c *SimulateCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	snap, err := c.Service.Simulate(ctx)
	if err != nil {
		return failed(c.Name(), "Simulation endpoint", err)
	}
	switch snap.Status {
	case grid.StatusNormal, grid.StatusAnomaly:
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Simulation returned an unrecognized status %q", snap.Status),
			Suggestion: "The dashboard will show it as UNKNOWN",
		}
	}
	return timed(c.Name(), "Simulation cycle: "+snap.Status, time.Since(start))
}

// SystemInfoCheck fetches GET /system-info.
type SystemInfoCheck struct {
	Service Service
}

func (c *SystemInfoCheck) Name() string     { return "backend_system_info" }
func (c *SystemInfoCheck) Category() string { return CategoryBackend }

func (c *SystemInfoCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	info, err := c.Service.SystemInfo(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "System info unavailable: " + errors.Human(err),
			Suggestion: "Only 'gridwatch info' needs this endpoint",
		}
	}
	msg := fmt.Sprintf("%d active agent%s", len(info.Agents.Active), plural(len(info.Agents.Active)))
	if len(info.Agents.Active) > 0 {
		msg += ": " + strings.Join(info.Agents.Active, ", ")
	}
	return timed(c.Name(), msg, time.Since(start))
}

// NewBackendChecks returns the endpoint checks against svc.
func NewBackendChecks(svc Service) []Check {
	return []Check{
		&HealthCheck{Service: svc},
		&SimulateCheck{Service: svc},
		&SystemInfoCheck{Service: svc},
	}
}

func failed(name, what string, err error) CheckResult {
	suggestion := "Check that the backend is running and --base-url is correct"
	if errors.IsTimeout(err) {
		suggestion = "Raise --timeout or check the backend is responding"
	} else if errors.IsCode(err, errors.ErrParse) {
		suggestion = "Check that --base-url points at the analysis service"
	}
	return CheckResult{
		Name:       name,
		Status:     StatusFail,
		Message:    what + ": " + errors.Human(err),
		Suggestion: suggestion,
	}
}

// timed passes, or warns when the response was slow.
func timed(name, msg string, elapsed time.Duration) CheckResult {
	if elapsed > SlowResponse {
		return CheckResult{
			Name:       name,
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s, but took %s", msg, elapsed.Round(time.Millisecond)),
			Suggestion: "The dashboard will feel sluggish at this latency",
		}
	}
	return CheckResult{Name: name, Status: StatusPass, Message: msg}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
