package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// defaultWidth is used before the first WindowSizeMsg arrives.
const defaultWidth = 80

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderActivity())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, backend address and data age.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("gridwatch")

	stats := LabelStyle.Render(" | " + m.baseURL + " | " + m.UpdatedText())

	return HeaderStyle.Render(title + stats)
}

// UpdatedText describes the age of the rendered snapshot.
func (m Model) UpdatedText() string {
	last := m.shell.LastUpdate()
	if last.IsZero() {
		return "no data yet"
	}
	return "updated " + humanize.RelTime(last, m.now(), "ago", "from now")
}

// renderBanner renders the connectivity banner across the full width.
func (m Model) renderBanner() string {
	banner := m.shell.View().Banner
	text := banner.Text
	if m.probing {
		text = m.spinner.View() + " " + text
	}
	return BannerStyle(banner, m.contentWidth()).Render(text)
}

// renderCards lays out the four region cards, in two columns on wide
// terminals and stacked otherwise.
func (m Model) renderCards() string {
	v := m.shell.View()

	if m.twoColumn() {
		colWidth := m.contentWidth()/2 - 1
		left := lipgloss.JoinVertical(lipgloss.Left,
			renderEventCard(v.Event, colWidth),
			renderStatusCard(v.Status, colWidth),
		)
		right := lipgloss.JoinVertical(lipgloss.Left,
			renderMetricsCard(v.Metrics, colWidth),
			renderAlertsCard(v.Alerts, colWidth),
		)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	width := m.contentWidth()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatusCard(v.Status, width),
		renderMetricsCard(v.Metrics, width),
		renderEventCard(v.Event, width),
		renderAlertsCard(v.Alerts, width),
	)
}

// renderActivity shows the busy indicator or the trigger hint.
func (m Model) renderActivity() string {
	if m.shell.Busy() {
		return " " + m.spinner.View() + " " + ValueStyle.Render("Running simulation...")
	}
	return " " + MutedStyle.Render("Press space to run a simulation")
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"space simulate",
		"? help",
		"q quit",
	}
	if m.interval > 0 {
		hints = append(hints, "auto-refresh every "+m.interval.String())
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}
