package dashboard

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/screens/summary"
	"github.com/abhisek/studiosim/internal/screens/workspace"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

const gridColumns = 4

type monthStartedMsg struct {
	Month     int
	Scenario  *scenario.DailyScenario
	Workspace *sim.Workspace
	Err       error
}

// Factories builds the screens the dashboard navigates to.
type Factories struct {
	Studio  func() screen.Screen
	History func() screen.Screen
}

// DashboardScreen shows the twelve months of the career and starts the
// selected month's workday.
type DashboardScreen struct {
	ctrl      *sim.Controller
	factories Factories

	cursor       int // 0-based month index
	loading      bool
	loadingMonth int
	spinner      spinner.Model
	confirmReset bool
	notice       string
	errMsg       string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen with the cursor on the current month.
func New(ctrl *sim.Controller, factories Factories) *DashboardScreen {
	return &DashboardScreen{
		ctrl:      ctrl,
		factories: factories,
		cursor:    ctrl.Snapshot().CurrentMonth - 1,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Career"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Start over"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "←↑↓→", Description: "Navigate"},
		{Key: "Enter", Description: "Start day"},
	}
	if s.factories.History != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Reset"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

// Month returns the month under the cursor.
func (s *DashboardScreen) Month() int {
	return s.cursor + 1
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case monthStartedMsg:
		return s.handleStarted(msg)

	case workspace.DayCompletedMsg:
		if msg.Advanced {
			s.notice = fmt.Sprintf("Month %d complete! Month %d is now unlocked.", msg.Month, msg.Month+1)
		} else {
			s.notice = fmt.Sprintf("Month %d replayed.", msg.Month)
		}
		snap := s.ctrl.Snapshot()
		s.cursor = snap.CurrentMonth - 1
		report := summary.New(summary.Report{
			Month:        msg.Month,
			DayTitle:     msg.DayTitle,
			Advanced:     msg.Advanced,
			Items:        msg.Graded,
			SessionScore: snap.Score,
		})
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: report} }

	case workspace.ExitedMsg:
		s.notice = "You left the office early. The day can be started again."
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.loading {
		return s, nil
	}
	key := msg.String()

	if s.confirmReset {
		s.confirmReset = false
		if key != "y" && key != "Y" {
			return s, nil
		}
		s.ctrl.Reset()
		if s.factories.Studio == nil {
			return s, nil
		}
		next := s.factories.Studio()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	switch key {
	case "left":
		if s.cursor%gridColumns > 0 {
			s.cursor--
		}
	case "right":
		if s.cursor%gridColumns < gridColumns-1 && s.cursor < sim.LastMonth-1 {
			s.cursor++
		}
	case "up", "k":
		if s.cursor >= gridColumns {
			s.cursor -= gridColumns
		}
	case "down", "j":
		if s.cursor+gridColumns < sim.LastMonth {
			s.cursor += gridColumns
		}
	case "enter", "space":
		return s.start()
	case "h", "H":
		if s.factories.History != nil {
			next := s.factories.History()
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "r", "R":
		s.confirmReset = true
	case "q", "Q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *DashboardScreen) start() (screen.Screen, tea.Cmd) {
	month := s.Month()
	if s.ctrl.MonthStatus(month) == sim.MonthLocked {
		s.notice = fmt.Sprintf("Month %d is locked. Complete month %d first.", month, s.ctrl.Snapshot().CurrentMonth)
		return s, nil
	}

	s.loading = true
	s.loadingMonth = month
	s.notice = ""
	s.errMsg = ""

	ctrl := s.ctrl
	return s, tea.Batch(s.spinner.Tick, func() tea.Msg {
		sc, err := ctrl.StartMonth(context.Background(), month)
		if err != nil {
			return monthStartedMsg{Month: month, Err: err}
		}
		ws, err := sim.NewWorkspace(ctrl)
		return monthStartedMsg{Month: month, Scenario: sc, Workspace: ws, Err: err}
	})
}

func (s *DashboardScreen) handleStarted(msg monthStartedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("Could not start month %d: %v", msg.Month, msg.Err)
		return s, nil
	}
	if scenario.IsFallback(msg.Scenario) {
		s.notice = "The AI is offline. Today runs on the standard practice day."
	}
	next := workspace.New(s.ctrl, msg.Workspace)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}
