package cli

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/logger"
	"github.com/gridsec/gridwatch/internal/monitor"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "gridwatch-debug.log"

var watchIntervalFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

The backend is probed once on startup and the banner shows whether it is
online. Press space (or s, or enter) to run a simulation cycle. With
--interval, or refresh_interval in the config, simulations also run on a timer.

When stdout isn't a terminal a single simulation runs and its result is
printed instead.

Keys:
  space, s, enter   run a simulation
  ?                 toggle help
  q, ctrl+c         quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchIntervalFlag)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "auto-refresh interval, e.g. 10s (default: manual)")
}

func watchCommand(intervalFlag string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return simulateCommand(os.Stdout, false)
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	interval, err := parseIntervalFlag(intervalFlag, cfg.RefreshInterval)
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	// Logs go through the std logger, which now points away from the screen.
	shell := dashboard.NewShell(c, logger.NewEnvLogger("[dashboard]"))
	p := tea.NewProgram(monitor.NewModel(shell, c.BaseURL(), interval), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// redirectLogs points the std logger at a debug file when debugging, or
// discards it otherwise, so nothing is written over the dashboard.
func redirectLogs() (func(), error) {
	restore := func() { log.SetOutput(os.Stderr) }

	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := tea.LogToFile(debugLogFile, "gridwatch")
	if err != nil {
		return nil, err
	}
	return func() {
		f.Close()
		restore()
	}, nil
}
