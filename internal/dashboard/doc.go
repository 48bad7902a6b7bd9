// Package dashboard implements the client-side synchronization and
// presentation pipeline of the grid monitor.
//
// # Components
//
//	HealthMonitor - probes GET / once at startup and paints the banner
//	Fetcher       - runs GET /simulate and normalizes failures into one error
//	Renderer      - paints a Snapshot into the event/status/metrics/alert regions
//	Surfacer      - drives the dashboard into its error-visible state
//	Shell         - owns the Handle and dispatches the trigger command
//
// # State ownership
//
// The Shell owns the Handle (every painted region) and the connectivity
// state. Components never reach the Handle directly; each is constructed
// with the slice it writes to (Banner, RenderTarget, SurfaceTarget), which
// lets tests inspect regions without a terminal.
//
// # Trigger discipline
//
// OnTriggerRequested acquires the Trigger, fetches, then renders or surfaces.
// A second request while one is outstanding is rejected rather than queued.
// Event loops that must not block split this into Begin, Fetch (off loop)
// and Complete; Complete releases the Trigger in a defer so every exit path
// re-enables it.
package dashboard
