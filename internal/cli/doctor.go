package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/config"
	"github.com/gridsec/gridwatch/internal/doctor"
	"github.com/gridsec/gridwatch/internal/ui"
)

var doctorJSON bool

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config and backend problems",
	Long: `Check the config file in use, then probe each backend endpoint the dashboard
relies on and report anything that's failing or slow.

Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout(), doctorJSON)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

func doctorCommand(w io.Writer, asJSON bool) error {
	ctx := context.Background()
	checks := doctor.NewConfigChecks(cfgFile)
	results := doctor.RunAll(ctx, checks)

	// Backend checks only make sense once the settings load.
	if cfg, _, err := config.Resolve(cfgFile); err == nil {
		if err := applyOverrides(cfg, baseURLFlag, timeoutFlag); err == nil && config.Validate(cfg) == nil {
			if c, err := newClient(cfg); err == nil {
				endpoints := doctor.NewBackendChecks(c)
				checks = append(checks, endpoints...)
				results = append(results, doctor.RunAllParallel(ctx, endpoints)...)
			}
		}
	}

	if asJSON {
		if err := WriteJSONSuccess(w, buildDoctorOutput(checks, results)); err != nil {
			return err
		}
	} else {
		writeDoctorText(w, checks, results)
	}

	if doctor.HasFailures(results) {
		return &exitError{code: 1}
	}
	return nil
}

func buildDoctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := doctor.GroupByCategory(checks)
	out := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}
	for _, cat := range doctor.CategoryOrder {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		out.Categories = append(out.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	out.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return out
}

func writeDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	fmt.Fprintln(w, ui.RenderHeader("gridwatch diagnostics", ""))

	grouped := doctor.GroupByCategory(checks)
	for _, cat := range doctor.CategoryOrder {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		lines := make([]string, 0, len(indices))
		for _, idx := range indices {
			lines = append(lines, checkLines(results[idx])...)
		}
		fmt.Fprintln(w, ui.RenderSection(cat, lines...))
	}

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
		return
	}
	symbol := ui.WarningStyle().Render(ui.SymbolWarning)
	if doctor.HasFailures(results) {
		symbol = ui.ErrorStyle().Render(ui.SymbolFail)
	}
	fmt.Fprintf(w, "%s %s\n", symbol, doctor.Summary(results))
}

func checkLines(r doctor.CheckResult) []string {
	var symbol string
	switch r.Status {
	case doctor.StatusPass:
		symbol = ui.SuccessStyle().Render(ui.SymbolSuccess)
	case doctor.StatusWarn:
		symbol = ui.WarningStyle().Render(ui.SymbolWarning)
	default:
		symbol = ui.ErrorStyle().Render(ui.SymbolFail)
	}

	lines := []string{symbol + " " + r.Message}
	if r.Suggestion != "" && r.Status != doctor.StatusPass {
		for _, line := range strings.Split(r.Suggestion, "\n") {
			lines = append(lines, "  "+ui.MutedStyle().Render(line))
		}
	}
	return lines
}
