// Package ui provides terminal output helpers shared by gridwatch's
// one-shot commands and the dashboard.
//
// # Color Scheme
//
// Semantic colors are ANSI codes so they follow the terminal theme:
//
//	ColorSuccess   (green)  - Normal readings, online backend
//	ColorError     (red)    - Failures, danger tier
//	ColorWarning   (yellow) - Anomalies, warning tier
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//
// Use DisableColors() to switch to monochrome output (for --no-color), or
// ApplyColorMode with the output.color setting.
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Running simulation")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
//
// The spinner handles line clearing and prints the elapsed time when it
// finishes.
package ui
