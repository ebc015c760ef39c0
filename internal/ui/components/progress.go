package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for Value out of Max.
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, value, maxValue, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Value: value,
		Max:   maxValue,
		Width: width,
	}
}

// Fraction returns Value/Max clamped to 0..1.
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return max(0, min(1, float64(p.Value)/float64(p.Max)))
}

// View renders the progress bar followed by "value/max".
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Value, p.Max)
	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
