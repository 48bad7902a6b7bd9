package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/monitor"
	"github.com/gridsec/gridwatch/internal/ui"
)

var alertColumns = []ui.TableColumn{
	{Title: "Severity", Width: 10},
	{Title: "Type", Width: 24},
	{Title: "Detail", Width: 40},
}

// renderViewText prints a ViewState as plain sections for non-interactive
// output.
func renderViewText(v dashboard.ViewState, baseURL string) string {
	var b strings.Builder

	b.WriteString(ui.RenderHeader("Smart Grid Monitor", baseURL))
	b.WriteString("\n")

	banner := lipgloss.NewStyle().Foreground(lipgloss.Color(v.Banner.Color())).Render(v.Banner.Text)
	b.WriteString(ui.RenderSection("Backend", fmt.Sprintf("%s (%s)", banner, v.Connectivity)))
	b.WriteString("\n")

	b.WriteString(ui.RenderSection("Latest Event", eventLines(v.Event)...))
	b.WriteString("\n")

	badge := lipgloss.NewStyle().Bold(true).Foreground(monitor.BadgeColor(v.Status.Badge)).Render(v.Status.Badge.Label())
	b.WriteString(ui.RenderSection("System Status", badge, v.Status.Message))
	b.WriteString("\n")

	b.WriteString(ui.RenderSection("Deviation Metrics",
		metricLine("Voltage", v.Metrics.Voltage),
		metricLine("Latency", v.Metrics.Latency),
		metricLine("Frequency", v.Metrics.Frequency),
	))
	b.WriteString("\n")

	b.WriteString(ui.RenderSection("Alerts"))
	if len(v.Alerts.Rows) == 0 {
		b.WriteString("  " + ui.MutedStyle().Render(v.Alerts.Placeholder) + "\n")
		return b.String()
	}

	rows := make([][]string, len(v.Alerts.Rows))
	for i, row := range v.Alerts.Rows {
		severity := row.Severity
		if severity == "" {
			severity = row.Class
		}
		rows[i] = []string{severity, row.Type, row.Detail}
	}
	b.WriteString(ui.RenderSimpleTable(alertColumns, rows))
	b.WriteString("\n")
	return b.String()
}

func eventLines(e dashboard.EventRegion) []string {
	if !e.Set {
		return []string{ui.MutedStyle().Render("No event received")}
	}
	return []string{
		fmt.Sprintf("%-12s %s", "Timestamp", e.Timestamp),
		fmt.Sprintf("%-12s %s", "Component", e.Component),
		fmt.Sprintf("%-12s %s V", "Voltage", dashboard.FormatNumber(e.Voltage)),
		fmt.Sprintf("%-12s %s Hz", "Frequency", dashboard.FormatNumber(e.Frequency)),
		fmt.Sprintf("%-12s %s ms", "Latency", dashboard.FormatNumber(e.Latency)),
	}
}

func metricLine(label string, v dashboard.MetricValue) string {
	return fmt.Sprintf("%-12s %s", label, monitor.TierStyle(v.Tier).Render(v.Text))
}
