package workspace

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/ui/components"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

// Tab is a workspace view.
type Tab int

const (
	TabMail Tab = iota
	TabCalendar
)

// WorkspaceScreen implements screen.Screen for one simulated workday.
type WorkspaceScreen struct {
	ctrl *sim.Controller
	ws   *sim.Workspace
	sc   *scenario.DailyScenario

	tab      Tab
	selected int    // index into the unresolved inbox
	openID   string // email open in the reader, "" for the list
	editor   components.Editor
	spinner  spinner.Model

	evaluating bool
	assisting  bool
	feedback   *sim.FeedbackItem
	graded     []sim.FeedbackItem
	notice     string
	errMsg     string
}

var _ screen.Screen = (*WorkspaceScreen)(nil)
var _ screen.KeyHintProvider = (*WorkspaceScreen)(nil)

// New creates a WorkspaceScreen for the controller's current scenario.
func New(ctrl *sim.Controller, ws *sim.Workspace) *WorkspaceScreen {
	return &WorkspaceScreen{
		ctrl:    ctrl,
		ws:      ws,
		sc:      ctrl.Scenario(),
		editor:  components.NewEditor("Write your reply...", 60, 6),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

func (s *WorkspaceScreen) Init() tea.Cmd {
	return nil
}

func (s *WorkspaceScreen) Title() string {
	if s.sc == nil {
		return "Workspace"
	}
	return s.sc.DayTitle
}

func (s *WorkspaceScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.openID != "":
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Send"},
			{Key: "Ctrl+G", Description: "AI draft"},
			{Key: "Esc", Description: "Inbox"},
		}
	case s.tab == TabCalendar:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Mail"},
			{Key: "Esc", Description: "Leave day"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Tab", Description: "Calendar"},
	}
	if s.ctrl.Store().AllResolved() {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Complete day"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave day"})
}

func (s *WorkspaceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluatedMsg:
		return s.handleEvaluated(msg)

	case assistedMsg:
		return s.handleAssisted(msg)

	case spinner.TickMsg:
		if !s.evaluating && !s.assisting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.openID != "" {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WorkspaceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Feedback overlay: any key dismisses.
	if s.feedback != nil {
		s.feedback = nil
		if s.ctrl.Store().AllResolved() {
			s.notice = "Inbox zero! Press C to complete the day."
		}
		return s, nil
	}

	if s.openID != "" {
		return s.handleReaderKey(msg)
	}

	switch key {
	case "esc":
		return s.exit()
	case "tab":
		if s.tab == TabMail {
			s.tab = TabCalendar
		} else {
			s.tab = TabMail
		}
		return s, nil
	}

	if s.tab != TabMail {
		return s, nil
	}

	inbox := s.ctrl.Store().UnresolvedEmails()
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(inbox)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(inbox) {
			return s, s.open(inbox[s.selected].ID)
		}
	case "c", "C":
		return s.complete()
	}
	return s, nil
}

func (s *WorkspaceScreen) handleReaderKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.ws.SetDraft(s.openID, s.editor.Value())
		s.openID = ""
		s.editor.Blur()
		s.errMsg = ""
		return s, nil
	case "ctrl+s":
		return s.submit()
	case "ctrl+g":
		return s.assist()
	}
	if s.evaluating {
		return s, nil
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *WorkspaceScreen) open(emailID string) tea.Cmd {
	s.openID = emailID
	s.errMsg = ""
	s.notice = ""
	s.editor.SetValue(s.ws.Draft(emailID))
	return s.editor.Focus()
}

func (s *WorkspaceScreen) submit() (screen.Screen, tea.Cmd) {
	if s.evaluating || s.assisting {
		return s, nil
	}
	if s.editor.Blank() {
		s.errMsg = "Write a reply before sending."
		return s, nil
	}
	emailID, content := s.openID, s.editor.Value()
	s.ws.SetDraft(emailID, content)
	s.evaluating = true
	s.errMsg = ""

	ws := s.ws
	return s, tea.Batch(s.spinner.Tick, func() tea.Msg {
		item, err := ws.SubmitEmailReply(context.Background(), emailID, content)
		return evaluatedMsg{EmailID: emailID, Item: item, Err: err}
	})
}

func (s *WorkspaceScreen) handleEvaluated(msg evaluatedMsg) (screen.Screen, tea.Cmd) {
	s.evaluating = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, sim.ErrProviderFailure):
			s.errMsg = "The evaluation failed. Your reply is kept, try sending it again."
		default:
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	item := msg.Item
	s.feedback = &item
	s.graded = append(s.graded, item)
	if s.openID == msg.EmailID {
		s.openID = ""
		s.editor.SetValue("")
		s.editor.Blur()
	}
	if n := len(s.ctrl.Store().UnresolvedEmails()); s.selected >= n {
		s.selected = max(0, n-1)
	}
	return s, nil
}

func (s *WorkspaceScreen) assist() (screen.Screen, tea.Cmd) {
	if s.evaluating || s.assisting {
		return s, nil
	}
	s.assisting = true
	s.errMsg = ""

	ws, emailID := s.ws, s.openID
	return s, tea.Batch(s.spinner.Tick, func() tea.Msg {
		text, err := ws.RequestAssist(context.Background(), emailID)
		return assistedMsg{EmailID: emailID, Text: text, Err: err}
	})
}

func (s *WorkspaceScreen) handleAssisted(msg assistedMsg) (screen.Screen, tea.Cmd) {
	s.assisting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.Text == sim.AssistUnavailable {
		s.notice = msg.Text
		return s, nil
	}
	if s.openID == msg.EmailID {
		s.editor.SetValue(msg.Text)
	}
	return s, nil
}

func (s *WorkspaceScreen) complete() (screen.Screen, tea.Cmd) {
	done := DayCompletedMsg{Graded: s.graded}
	if s.sc != nil {
		done.Month = s.sc.Month
		done.DayTitle = s.sc.DayTitle
	}
	advanced, err := s.ctrl.CompleteScenario()
	if errors.Is(err, sim.ErrTasksPending) {
		s.notice = "Answer every email before closing the day."
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	done.Advanced = advanced
	return s, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return done },
	)
}

func (s *WorkspaceScreen) exit() (screen.Screen, tea.Cmd) {
	if s.evaluating || s.assisting {
		s.notice = "Wait for the current request to finish."
		return s, nil
	}
	if err := s.ctrl.ExitWorkspace(); err != nil && !errors.Is(err, sim.ErrWrongPhase) {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return ExitedMsg{} },
	)
}
