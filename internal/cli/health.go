package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/ui"
)

// Exit codes for the health command.
const (
	exitOffline  = 1
	exitDegraded = 2
)

var healthJSON bool

// HealthOutput is the data payload of health --json.
type HealthOutput struct {
	BaseURL      string   `json:"base_url"`
	State        string   `json:"state"`
	Banner       string   `json:"banner"`
	Status       string   `json:"status,omitempty"`
	Version      string   `json:"version,omitempty"`
	ChunksActive []string `json:"chunks_active,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the backend once",
	Long: `Send one health request to the backend and report its connectivity.

Exit codes:
  0  online
  1  offline (request failed or the response couldn't be read)
  2  degraded (reachable, but the framework didn't report itself running)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return healthCommand(cmd.OutOrStdout(), healthJSON)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
}

func healthCommand(w io.Writer, asJSON bool) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	var banner dashboard.Banner
	h, probeErr := c.Health(context.Background())
	state, err := dashboard.NewHealthMonitor(nil, &banner, commandLogger()).Judge(h, probeErr)

	out := HealthOutput{BaseURL: c.BaseURL(), State: state.String(), Banner: banner.Text}
	if h != nil {
		out.Status = h.Status
		out.Version = h.Version
		out.ChunksActive = h.ChunksActive
	}

	if asJSON {
		if err != nil {
			_ = WriteJSONFromError(w, err, out)
		} else {
			_ = WriteJSONSuccess(w, out)
		}
	} else {
		writeHealthText(w, out, err)
	}

	switch state {
	case grid.Offline:
		return &exitError{code: exitOffline}
	case grid.Degraded:
		return &exitError{code: exitDegraded}
	}
	return nil
}

func writeHealthText(w io.Writer, out HealthOutput, err error) {
	switch out.State {
	case grid.Online.String():
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), out.Banner)
	case grid.Degraded.String():
		fmt.Fprintf(w, "%s %s\n", ui.WarningStyle().Render(ui.SymbolWarning), out.Banner)
	default:
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), out.Banner)
	}

	fmt.Fprintf(w, "  %s %s\n", ui.MutedStyle().Render("backend:"), out.BaseURL)
	if out.Status != "" {
		fmt.Fprintf(w, "  %s %s\n", ui.MutedStyle().Render("status: "), out.Status)
	}
	if out.Version != "" {
		fmt.Fprintf(w, "  %s %s\n", ui.MutedStyle().Render("version:"), out.Version)
	}
	if len(out.ChunksActive) > 0 {
		fmt.Fprintf(w, "  %s %s\n", ui.MutedStyle().Render("chunks: "), strings.Join(out.ChunksActive, ", "))
	}
	if err == nil {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", errors.Human(err))
	var gwErr *errors.Error
	if stderrors.As(err, &gwErr) && gwErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", gwErr.Suggestion)
	}
}
