// Package monitor implements the interactive terminal dashboard for the
// Smart Grid analysis service.
//
// The dashboard shows the backend connectivity banner, the latest grid event,
// the system status badge, the three deviation metrics colored by threshold
// tier, and the alert list. A simulation runs when the operator presses a
// trigger key, or on a timer when auto-refresh is enabled.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: wraps a *dashboard.Shell plus terminal state (size, help, spinner)
//   - Update: processes keystrokes, ticks and request results
//   - View: renders the Shell's painted state to a string
//
// # Message Flow
//
// Network calls never run inside Update. A trigger key acquires the trigger
// via Shell.Begin and returns a command that performs Shell.Fetch; its result
// comes back as fetchResultMsg and Update hands it to Shell.Complete, which
// renders or surfaces it and releases the trigger:
//
//  1. Init issues the health probe (healthMsg) and starts the spinner
//  2. space/enter/s acquires the trigger and issues the fetch command
//  3. fetchResultMsg arrives and is painted
//  4. refreshTickMsg (auto-refresh only) repeats step 2 when idle
//
// Presses while a fetch is outstanding are ignored.
//
// # Layout
//
// Terminals at least TwoColumnWidth columns wide show the cards in two
// columns; narrower terminals stack them with status and metrics first.
//
// # Keyboard Shortcuts
//
//	space, Enter, s - Run a simulation
//	?               - Toggle help overlay
//	Esc             - Close help
//	q, Ctrl+C       - Quit
package monitor
