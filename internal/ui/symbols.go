package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation completed
	SymbolFail    = "✗" // Operation failed
	SymbolWarning = "⚠" // Completed with something to look at
	SymbolPending = "○" // Not yet started
	SymbolBullet  = "•" // List item
)
