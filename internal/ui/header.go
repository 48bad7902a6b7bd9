package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the title line, an optional subtitle, and a divider.
func RenderHeader(title, subtitle string) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(MutedStyle().Render(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("━", HeaderWidth)))
	b.WriteString("\n")

	return b.String()
}

// RenderSection renders a bold section label followed by its body lines,
// indented by two spaces.
func RenderSection(label string, lines ...string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(label))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
