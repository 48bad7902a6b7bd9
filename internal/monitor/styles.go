package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridsec/gridwatch/internal/dashboard"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/threshold"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0B1120") // Control room
	ColorSurfaceBg = lipgloss.Color("#111827") // Panel
	ColorBorder    = lipgloss.Color("#1F2A44") // Panel edge

	// Semantic colors for readings
	ColorHealthy  = lipgloss.Color("#10B981") // Emerald
	ColorWarning  = lipgloss.Color("#F59E0B") // Amber
	ColorCritical = lipgloss.Color("#EF4444") // Red

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#F9FAFB")
	ColorTextSecondary = lipgloss.Color("#9CA3AF")
	ColorTextMuted     = lipgloss.Color("#6B7280")

	ColorAccent = lipgloss.Color("#38BDF8") // Sky
	ColorInfo   = lipgloss.Color("#60A5FA") // Blue
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

// BusyFrames are the animation frames shown while a simulation is outstanding.
var BusyFrames = []string{"◐", "◓", "◑", "◒"}

// BusySpinner is the bubbles spinner definition for the busy indicator.
var BusySpinner = spinner.Spinner{
	Frames: BusyFrames,
	FPS:    time.Second / 8,
}

// TierColor returns the readout color for a threshold tier.
func TierColor(t threshold.Tier) lipgloss.Color {
	switch t {
	case threshold.Danger:
		return ColorCritical
	case threshold.Warning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// TierStyle returns a style with the tier's foreground color.
func TierStyle(t threshold.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TierColor(t)).Bold(t != threshold.Normal)
}

// SeverityColor returns the accent for an alert row class.
func SeverityColor(class string) lipgloss.Color {
	switch class {
	case grid.SeverityCritical, grid.SeverityHigh:
		return ColorCritical
	case grid.SeverityMedium:
		return ColorWarning
	case grid.SeverityLow:
		return ColorInfo
	default:
		return ColorTextMuted
	}
}

// BadgeColor returns the background for a status badge.
func BadgeColor(b dashboard.Badge) lipgloss.Color {
	switch b {
	case dashboard.BadgeNormal:
		return ColorHealthy
	case dashboard.BadgeAnomaly:
		return ColorWarning
	case dashboard.BadgeError:
		return ColorCritical
	default:
		return ColorTextMuted
	}
}

// BannerStyle returns the full-width style for the connectivity banner.
func BannerStyle(b dashboard.Banner, width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(ColorTextPrimary).
		Background(lipgloss.Color(b.Color())).
		Bold(true).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}
	return style
}
