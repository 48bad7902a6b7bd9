package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/ui"
)

var simulateJSON bool

// simulateResult is the data payload of simulate --json.
type simulateResult struct {
	BaseURL string              `json:"base_url"`
	View    dashboard.ViewState `json:"view"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation cycle and print the result",
	Long: `Probe the backend, run one simulation cycle, and print what the dashboard
would show: the grid event, the status badge, the deviation metrics, and the
alert rows.

Exits non-zero when the simulation request fails. The error is still shown in
the output the same way the dashboard shows it.

Examples:
  gridwatch simulate
  gridwatch simulate --json | jq .data.view.status`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return simulateCommand(cmd.OutOrStdout(), simulateJSON)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "output as JSON")
}

func simulateCommand(w io.Writer, asJSON bool) error {
	cfg, err := loadSettings()
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(w, err, nil)
			return &exitError{code: 1}
		}
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	var spinner *ui.Spinner
	if !asJSON && term.IsTerminal(int(os.Stderr.Fd())) {
		spinner = ui.NewSpinner("Running simulation")
		spinner.Start()
	}

	ctx := context.Background()
	shell := dashboard.NewShell(c, commandLogger())
	shell.Start(ctx)
	fetchErr := shell.OnTriggerRequested(ctx)

	if spinner != nil {
		if fetchErr != nil {
			spinner.Fail()
		} else {
			spinner.Success()
		}
	}

	result := simulateResult{BaseURL: c.BaseURL(), View: shell.View()}
	if asJSON {
		if fetchErr != nil {
			err = WriteJSONFromError(w, fetchErr, result)
		} else {
			err = WriteJSONSuccess(w, result)
		}
		if err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, renderViewText(result.View, result.BaseURL))
	}

	if fetchErr != nil {
		return &exitError{code: 1}
	}
	return nil
}
