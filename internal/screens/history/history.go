package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/store"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

// pastLimit caps how many feedback records from earlier sessions are shown.
const pastLimit = 30

// entry is one graded task, from this session or an earlier one.
type entry struct {
	At          string
	Month       int
	Subject     string
	Reply       string
	Feedback    string
	Suggestions string
	Score       int
	Past        bool
}

type historyLoadedMsg struct {
	Past []store.FeedbackEventRecord
	Err  error
}

// HistoryScreen lists graded tasks, newest first: the current session's
// feedback followed by earlier sessions read from the event log.
type HistoryScreen struct {
	ctrl      *sim.Controller
	eventRepo store.EventRepo
	entries   []entry
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. eventRepo may be nil, in which case
// only the current session is shown.
func New(ctrl *sim.Controller, eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		ctrl:      ctrl,
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	repo := s.eventRepo
	return func() tea.Msg {
		past, err := repo.QueryFeedback(context.Background(), store.QueryOpts{Limit: pastLimit})
		return historyLoadedMsg{Past: past, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Feedback history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.entries = s.buildEntries(msg.Past)
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

// buildEntries merges the live session with stored records. Stored records
// of the live session are skipped since the session state already has them.
func (s *HistoryScreen) buildEntries(past []store.FeedbackEventRecord) []entry {
	snap := s.ctrl.Snapshot()
	sessionID := s.ctrl.SessionID()

	var out []entry
	for i := len(snap.FeedbackHistory) - 1; i >= 0; i-- {
		fb := snap.FeedbackHistory[i]
		out = append(out, entry{
			At:          fb.At.Format("15:04"),
			Month:       monthOf(snap, fb),
			Subject:     subjectOf(snap, fb),
			Reply:       fb.UserAction,
			Feedback:    fb.AIFeedback,
			Suggestions: fb.Suggestions,
			Score:       fb.Score,
		})
	}
	for _, rec := range past {
		if rec.SessionID == sessionID {
			continue
		}
		out = append(out, entry{
			At:          rec.Timestamp.Format("Jan 02 15:04"),
			Month:       rec.Month,
			Subject:     rec.EmailID,
			Reply:       rec.UserAction,
			Feedback:    rec.AIFeedback,
			Suggestions: rec.Suggestions,
			Score:       rec.Score,
			Past:        true,
		})
	}
	return out
}

// monthOf returns the month a feedback item belongs to when its scenario
// is still loaded, else 0.
func monthOf(snap *sim.State, fb sim.FeedbackItem) int {
	if snap.Scenario != nil && snap.Scenario.ID == fb.ScenarioID {
		return snap.Scenario.Month
	}
	return 0
}

func subjectOf(snap *sim.State, fb sim.FeedbackItem) string {
	if snap.Scenario != nil && snap.Scenario.ID == fb.ScenarioID {
		if e, ok := snap.Scenario.Email(fb.EmailID); ok {
			return e.Subject
		}
	}
	return fb.EmailID
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" && len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No graded tasks yet. Answer your first email!")
	}

	var b strings.Builder
	b.WriteString("\n")

	detailWidth := min(width-8, 76)
	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		when := e.At
		if e.Past {
			when += " (earlier)"
		}
		month := ""
		if e.Month > 0 {
			month = fmt.Sprintf("  month %d", e.Month)
		}
		line := fmt.Sprintf("%s%s%s  %s  ", prefix, when, month, e.Subject)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		score := lipgloss.NewStyle().Foreground(scoreColor(e.Score)).Bold(true).Render(fmt.Sprintf("%d/100", e.Score))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+score))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(detailWidth)
			detail := dim.Render("Your reply: "+e.Reply) + "\n" +
				lipgloss.NewStyle().Foreground(theme.Text).Width(detailWidth).Render(e.Feedback)
			if e.Suggestions != "" {
				detail += "\n" + lipgloss.NewStyle().Foreground(theme.Purple).Width(detailWidth).Render(e.Suggestions)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func scoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	}
	return theme.Error
}
