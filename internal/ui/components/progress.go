package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional marker
// at a target percentage.
type ProgressBar struct {
	Label       string
	Percent     int
	Target      int
	ShowPercent bool
	Width       int
	Fill        lipgloss.Style
}

// NewProgressBar creates a new progress bar. percent is 0-100.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        lipgloss.NewStyle().Background(theme.Secondary),
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(barWidth*p.Percent/100, 0), barWidth)
	marker := -1
	if p.Target > 0 {
		marker = min(barWidth*p.Target/100, barWidth-1)
	}

	empty := lipgloss.NewStyle().Background(theme.Border)
	markStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	for i := range barWidth {
		cell := " "
		if i == marker {
			cell = "│"
		}
		switch {
		case i == marker && i < filled:
			result += p.Fill.Inherit(markStyle).Render(cell)
		case i == marker:
			result += empty.Inherit(markStyle).Render(cell)
		case i < filled:
			result += p.Fill.Render(cell)
		default:
			result += empty.Render(cell)
		}
	}

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", p.Percent))
	}

	return strings.TrimRight(result, "\n")
}
