package studio

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/sim/simtest"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "dashboard" }
func (s *stubScreen) Title() string                          { return "Dashboard" }

func newTestStudio() (*StudioScreen, *sim.Controller, *int) {
	ctrl := sim.NewController(sim.NewState(), simtest.Online(80))
	calls := 0
	s := New(ctrl, func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	return s, ctrl, &calls
}

// choose drives a key through the menu and delivers the resulting message.
func choose(s *StudioScreen, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(key)
	if cmd == nil {
		return nil
	}
	_, cmd = s.Update(cmd())
	return cmd
}

func TestStudioScreen_ListsAllStudios(t *testing.T) {
	s, _, _ := newTestStudio()
	view := s.View(100, 30)
	for _, st := range scenario.AllStudios() {
		if !strings.Contains(view, st.Label()) {
			t.Errorf("view missing %q", st.Label())
		}
	}
}

func TestStudioScreen_EnterSelectsAndReplaces(t *testing.T) {
	s, ctrl, calls := newTestStudio()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	cmd := choose(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if got := ctrl.Snapshot().Studio; got != scenario.StudioMedical {
		t.Errorf("studio = %q, want medical", got)
	}
	if ctrl.Phase() != sim.PhaseDashboard {
		t.Errorf("phase = %v, want dashboard", ctrl.Phase())
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestStudioScreen_DigitQuickPick(t *testing.T) {
	s, ctrl, _ := newTestStudio()
	if cmd := choose(s, tea.KeyPressMsg{Code: '4', Text: "4"}); cmd == nil {
		t.Fatal("expected a replace command")
	}
	if got := ctrl.Snapshot().Studio; got != scenario.StudioAccounting {
		t.Errorf("studio = %q, want accounting", got)
	}
}

func TestStudioScreen_AlreadySelectedStillContinues(t *testing.T) {
	s, ctrl, _ := newTestStudio()
	if err := ctrl.SelectStudio(scenario.StudioLegal); err != nil {
		t.Fatal(err)
	}
	if cmd := choose(s, tea.KeyPressMsg{Code: tea.KeyEnter}); cmd == nil {
		t.Fatal("expected a replace command")
	}
	if got := ctrl.Snapshot().Studio; got != scenario.StudioLegal {
		t.Errorf("studio changed to %q", got)
	}
}
