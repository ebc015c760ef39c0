package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/ui/components"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

func (s *DashboardScreen) View(width, height int) string {
	if s.loading {
		return s.renderLoading(width, height)
	}
	if s.confirmReset {
		return s.renderResetConfirm(width)
	}

	snap := s.ctrl.Snapshot()
	var b strings.Builder

	intro := fmt.Sprintf("%s · month %d of %d", snap.Studio.Label(), snap.CurrentMonth, sim.LastMonth)
	b.WriteString(theme.Subtitle.Width(width).Render(intro))
	b.WriteString("\n")

	bar := components.NewProgressBar("Career score", snap.Score, sim.MaxScore, min(40, max(10, width-40)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(s.renderGrid(width, height))
	b.WriteString("\n\n")

	mt := s.ctrl.MonthTheme(s.Month())
	blurb := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width-4, 80)).
		Render(fmt.Sprintf("Month %d · %s\n%s", s.Month(), mt.Title, mt.Blurb))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, blurb))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Accent).Render(s.notice))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}

func (s *DashboardScreen) renderGrid(width, height int) string {
	cardWidth := 20
	if layout.IsCompactWidth(width) {
		cardWidth = 16
	}
	compact := layout.IsCompactHeight(height)

	var rows []string
	for row := 0; row*gridColumns < sim.LastMonth; row++ {
		var cards []string
		for col := 0; col < gridColumns; col++ {
			idx := row*gridColumns + col
			if idx >= sim.LastMonth {
				break
			}
			cards = append(cards, s.renderCard(idx+1, idx == s.cursor, cardWidth, compact))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

func (s *DashboardScreen) renderCard(month int, selected bool, width int, compact bool) string {
	status := s.ctrl.MonthStatus(month)

	var icon string
	var style lipgloss.Style
	switch status {
	case sim.MonthCompleted:
		icon, style = "✓", theme.Done
	case sim.MonthCurrent:
		icon, style = "▶", lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	default:
		icon, style = "🔒", theme.Locked
	}

	title := style.Render(fmt.Sprintf("%s Month %d", icon, month))
	content := title
	if !compact {
		content += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.ctrl.MonthTheme(month).Title)
	}

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1).
		Render(content)
}

func (s *DashboardScreen) renderLoading(width, height int) string {
	text := s.spinner.View() + " Generating AI scenario for month " + fmt.Sprint(s.loadingMonth) + "..."
	hint := theme.Hint.Render("Your boss is preparing today's inbox.")
	content := lipgloss.NewStyle().Foreground(theme.Text).Render(text) + "\n\n" + hint
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *DashboardScreen) renderResetConfirm(width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Start over?") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render("Your score, months and feedback for this session will be lost.") + "\n\n" +
		theme.Hint.Render("y to confirm, any other key to cancel")
	box := theme.Overlay.Render(body)
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
