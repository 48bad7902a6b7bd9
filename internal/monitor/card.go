package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridsec/gridwatch/internal/dashboard"
)

// labelWidth pads field labels so values line up inside a card.
const labelWidth = 20

// Card widths account for border and padding.
const cardChrome = 4

func renderCard(title string, width int, lines ...string) string {
	inner := width - cardChrome
	if inner < 10 {
		inner = 10
	}
	body := append([]string{CardTitleStyle.Render(title)}, lines...)
	return CardStyle.Width(inner).Render(strings.Join(body, "\n"))
}

func field(label, value string) string {
	return LabelStyle.Width(labelWidth).Render(label) + value
}

func renderEventCard(e dashboard.EventRegion, width int) string {
	if !e.Set {
		return renderCard("Latest Event", width, MutedStyle.Render("No event received yet"))
	}
	return renderCard("Latest Event", width,
		field("Timestamp", ValueStyle.Render(e.Timestamp)),
		field("Component", ValueStyle.Render(e.Component)),
		field("Voltage", ValueStyle.Render(dashboard.FormatNumber(e.Voltage)+" V")),
		field("Frequency", ValueStyle.Render(dashboard.FormatNumber(e.Frequency)+" Hz")),
		field("Latency", ValueStyle.Render(dashboard.FormatNumber(e.Latency)+" ms")),
	)
}

func renderStatusCard(s dashboard.StatusRegion, width int) string {
	badge := BadgeStyle.
		Foreground(ColorDarkBg).
		Background(BadgeColor(s.Badge)).
		Render(s.Badge.Label())
	return renderCard("System Status", width,
		badge,
		ValueStyle.Render(s.Message),
	)
}

func renderMetricsCard(mr dashboard.MetricsRegion, width int) string {
	metric := func(label string, v dashboard.MetricValue) string {
		if v.Text == "" {
			return field(label, MutedStyle.Render("--"))
		}
		return field(label, TierStyle(v.Tier).Render(v.Text))
	}
	return renderCard("Deviation Metrics", width,
		metric("Voltage deviation", mr.Voltage),
		metric("Latency deviation", mr.Latency),
		metric("Frequency deviation", mr.Frequency),
	)
}

func renderAlertsCard(a dashboard.AlertsRegion, width int) string {
	if len(a.Rows) == 0 {
		text := a.Placeholder
		if text == "" {
			text = "No alerts"
		}
		return renderCard("Alerts", width, MutedStyle.Render(text))
	}

	lines := make([]string, 0, len(a.Rows)*2)
	for _, row := range a.Rows {
		marker := lipgloss.NewStyle().Foreground(SeverityColor(row.Class)).Render("●")
		heading := marker + " " + ValueStyle.Bold(true).Render(row.Type)
		if row.Severity != "" {
			heading += LabelStyle.Render(fmt.Sprintf(" [%s]", row.Severity))
		}
		lines = append(lines, heading, "  "+LabelStyle.Render(row.Detail))
	}
	return renderCard("Alerts", width, lines...)
}
