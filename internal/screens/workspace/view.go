package workspace

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

func (s *WorkspaceScreen) View(width, height int) string {
	if s.sc == nil {
		return renderError("No scenario loaded.", width)
	}
	if s.feedback != nil {
		return s.renderFeedback(width)
	}

	var b strings.Builder
	b.WriteString(s.renderBriefing(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")

	switch {
	case s.openID != "":
		b.WriteString(s.renderReader(width, height))
	case s.tab == TabCalendar:
		b.WriteString(s.renderCalendar(width))
	default:
		b.WriteString(s.renderInbox(width))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + s.notice))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	}
	return b.String()
}

func (s *WorkspaceScreen) renderBriefing(width int) string {
	store := s.ctrl.Store()
	title := theme.Selected.Render(s.sc.DayTitle)
	progress := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  %d/%d tasks done", store.ResolvedCount(), len(s.sc.Emails)))

	objective := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(20, width-6)).
		Render("Objective: " + s.sc.Objective)

	out := "  " + title + progress + "\n  " + objective
	if scenario.IsFallback(s.sc) {
		out += "\n  " + theme.Hint.Render("Offline practice day: the AI generator was unavailable.")
	}
	return out
}

func (s *WorkspaceScreen) renderTabs() string {
	mail := fmt.Sprintf("✉ Mail (%d)", len(s.ctrl.Store().UnresolvedEmails()))
	cal := fmt.Sprintf("▦ Calendar (%d)", len(s.sc.Events))
	if s.tab == TabMail {
		return "  " + theme.TabActive.Render(mail) + " " + theme.TabInactive.Render(cal)
	}
	return "  " + theme.TabInactive.Render(mail) + " " + theme.TabActive.Render(cal)
}

func (s *WorkspaceScreen) renderInbox(width int) string {
	inbox := s.ctrl.Store().UnresolvedEmails()
	if len(inbox) == 0 {
		done := theme.Done.Render("✓ Inbox zero.")
		hint := theme.Hint.Render("  Press C to complete the day.")
		return "  " + done + hint
	}

	snippetWidth := max(20, width-40)
	var b strings.Builder
	for i, e := range inbox {
		cursor := "  "
		style := theme.Unselected
		if i == s.selected {
			cursor = "▸ "
			style = theme.Selected
		}
		badge := ""
		if e.Urgent() {
			badge = theme.Urgent.Render(" URGENT")
		}
		b.WriteString("  " + cursor + style.Render(e.From) + " · " + style.Render(e.Subject) + badge + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("      "+e.Snippet(snippetWidth)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *WorkspaceScreen) renderReader(width, height int) string {
	email, ok := s.sc.Email(s.openID)
	if !ok {
		return renderError("Email not found.", width)
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	header := "  " + dim.Render("From: ") + email.From + "\n" +
		"  " + dim.Render("Subject: ") + email.Subject
	if email.Urgent() {
		header += theme.Urgent.Render("  URGENT")
	}

	body := theme.Card.Width(max(30, width-6)).Render(email.Body)

	s.editor.Resize(width-8, max(3, height/5))
	var status string
	switch {
	case s.evaluating:
		status = s.spinner.View() + " Evaluating..."
	case s.assisting:
		status = s.spinner.View() + lipgloss.NewStyle().Foreground(theme.Purple).Render(" Drafting a suggestion...")
	}

	out := header + "\n" + body + "\n\n" + s.editor.View()
	if status != "" {
		out += "\n  " + status
	}
	return out
}

func (s *WorkspaceScreen) renderCalendar(width int) string {
	events := s.sc.SortedEvents()
	if len(events) == 0 {
		return "  " + theme.Hint.Render("Nothing on the agenda today.")
	}

	conflicted := make(map[string]bool)
	for _, pair := range s.sc.Conflicts() {
		conflicted[pair[0]] = true
		conflicted[pair[1]] = true
	}

	byHour := make(map[int][]scenario.CalendarEvent)
	var unscheduled []scenario.CalendarEvent
	for _, ev := range events {
		t, ok := scenario.ParseClock(ev.Start)
		if !ok || t.Hour() < scenario.DayStartHour || t.Hour() > scenario.DayEndHour {
			unscheduled = append(unscheduled, ev)
			continue
		}
		byHour[t.Hour()] = append(byHour[t.Hour()], ev)
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	for h := scenario.DayStartHour; h <= scenario.DayEndHour; h++ {
		line := dim.Render(fmt.Sprintf("  %02d:00 │", h))
		for _, ev := range byHour[h] {
			line += " " + renderEvent(ev, conflicted[ev.ID])
		}
		b.WriteString(line + "\n")
	}
	for _, ev := range unscheduled {
		b.WriteString(dim.Render("     ?? │") + " " + renderEvent(ev, conflicted[ev.ID]) + "\n")
	}
	if len(conflicted) > 0 {
		b.WriteString("\n  " + theme.Urgent.Render("⚠ Overlapping events on the agenda"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEvent(ev scenario.CalendarEvent, conflict bool) string {
	color := theme.Secondary
	switch ev.Type {
	case scenario.EventMeeting:
		color = theme.Primary
	case scenario.EventCall:
		color = theme.Accent
	case scenario.EventPersonal:
		color = theme.Purple
	}
	badge := lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + string(ev.Type) + "]")
	text := fmt.Sprintf("%s %s-%s %s", badge, ev.Start, ev.End, ev.Title)
	if conflict {
		text += theme.Urgent.Render(" ⚠")
	}
	return text
}

func (s *WorkspaceScreen) renderFeedback(width int) string {
	fb := s.feedback
	var b strings.Builder

	b.WriteString(theme.ScoreColor(fb.Score).Render(fmt.Sprintf("Score: %d/100", fb.Score)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fb.AIFeedback))

	if fb.Suggestions != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Purple).Bold(true).Render("Suggestions"))
		b.WriteString("\n" + fb.Suggestions)
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Session score: %d/100 · press any key", s.ctrl.Snapshot().Score)))

	box := theme.Overlay.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(box)
}

func renderError(text string, width int) string {
	return "\n\n" + lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(text)
}
