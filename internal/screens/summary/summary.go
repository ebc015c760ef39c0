package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

// Report describes a completed workday.
type Report struct {
	Month        int
	DayTitle     string
	Advanced     bool
	Items        []sim.FeedbackItem
	SessionScore int
}

// Gained returns the points the day added to the session score.
func (r Report) Gained() int {
	total := 0
	for _, it := range r.Items {
		total = sim.AddScore(total, it.Score)
	}
	return total
}

// Average returns the mean task score, or 0 with no graded tasks.
func (r Report) Average() int {
	if len(r.Items) == 0 {
		return 0
	}
	sum := 0
	for _, it := range r.Items {
		sum += it.Score
	}
	return sum / len(r.Items)
}

// SummaryScreen displays the end-of-day report.
type SummaryScreen struct {
	report Report
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(report Report) *SummaryScreen {
	return &SummaryScreen{report: report}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Day Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("Month %d complete!", r.Month)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), r.DayTitle))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Tasks: %d        Average: %d/100        Points: +%d",
		len(r.Items), r.Average(), r.Gained())
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n")
	b.WriteString(center(theme.ScoreColor(r.SessionScore), fmt.Sprintf("Career score: %d/100", r.SessionScore)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Replies")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, it := range r.Items {
		line := fmt.Sprintf("  %-6s %s", fmt.Sprintf("%d", it.Score), firstSentence(it.AIFeedback, 60))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.ScoreColor(it.Score).UnsetBold().Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	next := "Replay days any time from the dashboard."
	switch {
	case r.Advanced:
		next = fmt.Sprintf("Month %d is now unlocked.", r.Month+1)
	case r.Month == sim.LastMonth:
		next = "That was the final month. Congratulations on your first year!"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent), next))

	return b.String()
}

// firstSentence returns the text up to the first period, cut to n runes.
func firstSentence(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i+1]
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
