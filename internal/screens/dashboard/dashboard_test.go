package dashboard

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/screens/summary"
	"github.com/abhisek/studiosim/internal/screens/workspace"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/sim/simtest"
)

type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.name }
func (s *stubScreen) Title() string                          { return s.name }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findStarted(msgs []tea.Msg) (monthStartedMsg, bool) {
	for _, m := range msgs {
		if v, ok := m.(monthStartedMsg); ok {
			return v, true
		}
	}
	return monthStartedMsg{}, false
}

func testDashboard(t *testing.T, content *simtest.Content) (*DashboardScreen, *sim.Controller) {
	t.Helper()
	ctrl := sim.NewController(sim.NewState(), content)
	if err := ctrl.SelectStudio(scenario.StudioArchitect); err != nil {
		t.Fatal(err)
	}
	d := New(ctrl, Factories{
		Studio:  func() screen.Screen { return &stubScreen{name: "studio"} },
		History: func() screen.Screen { return &stubScreen{name: "history"} },
	})
	return d, ctrl
}

func TestDashboard_ShowsTwelveMonths(t *testing.T) {
	d, _ := testDashboard(t, simtest.Online(80))
	view := d.View(120, 40)
	for _, want := range []string{"Month 1", "Month 12", "Studio Architettura", "Career score", "Onboarding & Routine"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_GridNavigation(t *testing.T) {
	d, _ := testDashboard(t, simtest.Online(80))
	d.Update(specialKey(tea.KeyRight))
	d.Update(specialKey(tea.KeyDown))
	if d.Month() != 6 {
		t.Errorf("Month() = %d, want 6", d.Month())
	}
	d.Update(specialKey(tea.KeyDown))
	d.Update(specialKey(tea.KeyDown))
	if d.Month() != 10 {
		t.Errorf("Month() = %d, want 10 (bottom row)", d.Month())
	}
	d.Update(specialKey(tea.KeyLeft))
	d.Update(specialKey(tea.KeyLeft))
	if d.Month() != 9 {
		t.Errorf("Month() = %d, want 9 (first column)", d.Month())
	}
}

func TestDashboard_LockedMonthRefused(t *testing.T) {
	d, ctrl := testDashboard(t, simtest.Online(80))
	d.Update(specialKey(tea.KeyRight))
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("locked month should not start")
	}
	if !strings.Contains(d.notice, "locked") {
		t.Errorf("notice = %q", d.notice)
	}
	if ctrl.Phase() != sim.PhaseDashboard {
		t.Errorf("phase = %v", ctrl.Phase())
	}
}

func TestDashboard_StartMonthPushesWorkspace(t *testing.T) {
	d, ctrl := testDashboard(t, simtest.Online(80))
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	if !d.loading {
		t.Fatal("expected loading state")
	}
	if !strings.Contains(d.View(100, 30), "Generating AI scenario") {
		t.Error("loading view should mention generation")
	}

	msg, ok := findStarted(run(cmd))
	if !ok {
		t.Fatal("expected monthStartedMsg")
	}
	_, cmd = d.Update(msg)
	if d.loading {
		t.Error("loading should end")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*workspace.WorkspaceScreen); !ok {
		t.Errorf("pushed %T, want workspace", push.Screen)
	}
	if ctrl.Phase() != sim.PhaseWorkspace {
		t.Errorf("phase = %v", ctrl.Phase())
	}
}

func TestDashboard_FallbackNotice(t *testing.T) {
	content := simtest.Online(80)
	content.Generate = func(int, scenario.StudioType) (*scenario.DailyScenario, error) {
		return nil, errors.New("quota")
	}
	d, ctrl := testDashboard(t, content)
	_, cmd := d.Update(specialKey(tea.KeyEnter))
	msg, _ := findStarted(run(cmd))
	d.Update(msg)

	if !strings.Contains(d.notice, "offline") {
		t.Errorf("notice = %q", d.notice)
	}
	if sc := ctrl.Scenario(); sc == nil || !scenario.IsFallback(sc) {
		t.Error("expected the fallback scenario")
	}
}

func TestDashboard_DayCompleted(t *testing.T) {
	d, _ := testDashboard(t, simtest.Online(80))
	_, cmd := d.Update(workspace.DayCompletedMsg{Month: 1, Advanced: true})
	if !strings.Contains(d.notice, "Month 2 is now unlocked") {
		t.Errorf("notice = %q", d.notice)
	}
	if cmd == nil {
		t.Fatal("expected the day summary to be pushed")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("pushed %T, want summary", push.Screen)
	}
	d.Update(workspace.DayCompletedMsg{Month: 1})
	if !strings.Contains(d.notice, "replayed") {
		t.Errorf("notice = %q", d.notice)
	}
}

func TestDashboard_HistoryPush(t *testing.T) {
	d, _ := testDashboard(t, simtest.Online(80))
	_, cmd := d.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	}
}

func TestDashboard_ResetConfirm(t *testing.T) {
	d, ctrl := testDashboard(t, simtest.Online(80))

	d.Update(keyPress('r'))
	if !d.confirmReset {
		t.Fatal("expected confirmation")
	}
	_, cmd := d.Update(keyPress('n'))
	if cmd != nil || d.confirmReset {
		t.Error("n should cancel")
	}
	if ctrl.Phase() != sim.PhaseDashboard {
		t.Error("cancel must not reset")
	}

	d.Update(keyPress('r'))
	_, cmd = d.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if ctrl.Phase() != sim.PhaseSelectingStudio {
		t.Errorf("phase = %v, want selecting studio", ctrl.Phase())
	}
}
