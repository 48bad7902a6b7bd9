package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeySimulate   = "s"
	KeySpace      = " "
	KeySpaceName  = "space"
	KeyEnter      = "enter"
	KeyToggleHelp = "?"
	KeyCloseHelp  = "esc"
)

// HandleKeyMsg processes keyboard input and returns the command to run.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeySimulate, KeySpace, KeySpaceName, KeyEnter:
		// presses during an outstanding fetch are dropped, not queued
		return true, m.triggerCmd()
	}

	return false, nil
}
