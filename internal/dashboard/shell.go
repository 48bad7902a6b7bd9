package dashboard

import (
	"context"
	"time"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// Backend is everything the dashboard needs from the analysis service.
type Backend interface {
	HealthChecker
	SnapshotSource
}

// Shell owns the painted state and dispatches user commands to the
// components. It is not safe for concurrent use; drive it from a single
// event loop.
type Shell struct {
	handle   *Handle
	state    grid.ConnectivityState
	health   *HealthMonitor
	fetcher  *Fetcher
	renderer *Renderer
	surfacer *Surfacer
	log      logger.Logger

	lastUpdate time.Time
	now        func() time.Time
}

// NewShell wires the components over a fresh Handle.
func NewShell(backend Backend, log logger.Logger) *Shell {
	log = logger.OrDefault(log)
	h := NewHandle()
	return &Shell{
		handle:   h,
		state:    grid.Unknown,
		health:   NewHealthMonitor(backend, h.Banner, log),
		fetcher:  NewFetcher(backend, log),
		renderer: NewRenderer(h.RenderSlice(), log),
		surfacer: NewSurfacer(h.SurfaceSlice(), log),
		log:      log,
		now:      time.Now,
	}
}

// Start runs the startup health probe. A failed probe is surfaced; a
// degraded one only paints the banner.
func (s *Shell) Start(ctx context.Context) grid.ConnectivityState {
	return s.ApplyHealth(s.health.Probe(ctx))
}

// Probe runs the health request without touching the view. Pair it with
// CompleteProbe when the request runs off the event loop.
func (s *Shell) Probe(ctx context.Context) (*grid.Health, error) {
	return s.health.checker.Health(ctx)
}

// CompleteProbe judges a health response, paints the banner, and surfaces
// a failed probe.
func (s *Shell) CompleteProbe(h *grid.Health, err error) grid.ConnectivityState {
	return s.ApplyHealth(s.health.Judge(h, err))
}

// ApplyHealth records a probe outcome and surfaces it if it failed.
func (s *Shell) ApplyHealth(state grid.ConnectivityState, err error) grid.ConnectivityState {
	s.state = state
	if err != nil {
		s.surface(err, OriginHealth)
	}
	return s.state
}

// OnTriggerRequested is the single entry point for "run a simulation".
// It returns an ErrBusy error without fetching while another fetch is
// outstanding; otherwise it returns the fetch error, if any, after surfacing it.
func (s *Shell) OnTriggerRequested(ctx context.Context) error {
	if !s.Begin() {
		return errors.New(errors.ErrBusy, "A simulation is already running", "Wait for it to finish")
	}
	snap, err := s.Fetch(ctx)
	return s.Complete(snap, err)
}

// Begin acquires the trigger. Returns false if a fetch is outstanding.
func (s *Shell) Begin() bool {
	if !s.handle.Trigger.Acquire() {
		s.log.Debug("trigger ignored: fetch outstanding")
		return false
	}
	return true
}

// Fetch performs the snapshot request. Safe to call off the event loop
// because it touches no painted state.
func (s *Shell) Fetch(ctx context.Context) (*grid.Snapshot, error) {
	return s.fetcher.Fetch(ctx)
}

// Complete renders snap or surfaces err, then releases the trigger on every
// exit path.
func (s *Shell) Complete(snap *grid.Snapshot, err error) error {
	defer s.handle.Trigger.Release()

	if err != nil {
		s.surface(err, OriginFetch)
		return err
	}
	s.renderer.Render(snap)
	s.lastUpdate = s.now()
	return nil
}

func (s *Shell) surface(err error, origin Origin) {
	s.surfacer.Surface(err, origin)
	s.state = grid.Offline
}

// Connectivity returns the current connectivity belief.
func (s *Shell) Connectivity() grid.ConnectivityState {
	return s.state
}

// Busy reports whether a fetch is outstanding.
func (s *Shell) Busy() bool {
	return s.handle.Trigger.Busy()
}

// LastUpdate returns when a snapshot was last rendered, zero if never.
func (s *Shell) LastUpdate() time.Time {
	return s.lastUpdate
}

// View returns a copy of the painted state.
func (s *Shell) View() ViewState {
	return s.handle.View()
}
