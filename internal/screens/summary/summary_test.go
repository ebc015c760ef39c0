package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/sim"
)

func testReport() Report {
	return Report{
		Month:    3,
		DayTitle: "Archivio digitale",
		Advanced: true,
		Items: []sim.FeedbackItem{
			{EmailID: "e1", Score: 35, AIFeedback: "Troppo informale. Usa il lei."},
			{EmailID: "e2", Score: 82, AIFeedback: "Chiaro e completo."},
		},
		SessionScore: 27,
	}
}

func TestReport_Totals(t *testing.T) {
	r := testReport()
	if got := r.Gained(); got != 13 {
		t.Errorf("Gained() = %d, want 13", got)
	}
	if got := r.Average(); got != 58 {
		t.Errorf("Average() = %d, want 58", got)
	}
	if (Report{}).Average() != 0 {
		t.Error("empty report average should be 0")
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testReport())
	view := s.View(100, 30)

	for _, want := range []string{
		"Month 3 complete!",
		"Archivio digitale",
		"Tasks: 2",
		"Points: +13",
		"Career score: 27/100",
		"Troppo informale.",
		"Month 4 is now unlocked.",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Usa il lei") {
		t.Error("feedback should be cut to its first sentence")
	}
}

func TestSummaryScreen_FinalMonth(t *testing.T) {
	r := testReport()
	r.Month = sim.LastMonth
	r.Advanced = false
	if !strings.Contains(New(r).View(100, 30), "final month") {
		t.Error("expected the final month message")
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testReport())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	if New(Report{}).Title() != "Day Summary" {
		t.Error("unexpected title")
	}
}
