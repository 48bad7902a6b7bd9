package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/logger"
	"github.com/gridsec/gridwatch/internal/ui"
)

// Global flags
var (
	cfgFile     string
	baseURLFlag string
	timeoutFlag string
	noColor     bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "gridwatch",
	Short: "Smart Grid monitoring dashboard",
	Long: `gridwatch watches a Smart Grid analysis service from the terminal.

Run with no arguments to open the interactive dashboard. Press space to run a
simulation cycle on the backend and see the latest grid event, the system
status, the voltage/latency/frequency deviations, and any detected anomalies.

Examples:
  gridwatch
  gridwatch --base-url http://localhost:8000
  gridwatch simulate --json
  gridwatch health`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchIntervalFlag)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: search for .gridwatch.yaml)")
	pf.StringVar(&baseURLFlag, "base-url", "", "analysis service URL (overrides config)")
	pf.StringVar(&timeoutFlag, "timeout", "", "per-request timeout, e.g. 10s (0 waits indefinitely)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log requests and component activity to stderr")

	rootCmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "auto-refresh interval, e.g. 10s (default: manual)")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

func applyGlobalFlags() {
	if verbose {
		os.Setenv(logger.DebugEnv, "1")
	}
	if noColor {
		ui.DisableColors()
	}
}

// commandLogger returns the logger for one-shot commands: component activity
// is only printed when debugging.
func commandLogger() logger.Logger {
	if logger.DebugEnabled() {
		return logger.NewEnvLogger("[gridwatch]")
	}
	return logger.Noop()
}

// exitError carries an exit status for a failure whose details were already
// written to the command's output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// reportError prints err for a human and returns the process exit code.
func reportError(w io.Writer, err error) int {
	var exit *exitError
	if stderrors.As(err, &exit) {
		return exit.code
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(w, ui.ErrorStyle().Render(ui.SymbolFail)+" "+err.Error())
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(w, "\n  '%s' isn't a gridwatch command.\n", name)
		}
		fmt.Fprintln(w, "\n  Run 'gridwatch --help' to see what's available.")
		return 2
	}

	fmt.Fprintln(w, strings.TrimRight(err.Error(), "\n"))
	return 1
}

// isUnknownCommandError reports whether err is cobra's unknown command or
// flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

var unknownCommandRe = regexp.MustCompile(`unknown command "([^"]+)"`)

// extractUnknownCommand returns the command name from cobra's error, or "".
func extractUnknownCommand(err error) string {
	m := unknownCommandRe.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
