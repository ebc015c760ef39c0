package sim

import (
	"slices"
	"strconv"
	"time"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
)

// Career bounds.
const (
	FirstMonth = 1
	LastMonth  = 12
	MaxScore   = 100
)

// Phase is the top-level screen state of a session.
type Phase int

const (
	PhaseSelectingStudio Phase = iota // No studio chosen yet
	PhaseDashboard                    // Month grid
	PhaseLoading                      // Scenario generation in flight
	PhaseWorkspace                    // Working through a scenario
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectingStudio:
		return "selecting-studio"
	case PhaseDashboard:
		return "dashboard"
	case PhaseLoading:
		return "loading"
	case PhaseWorkspace:
		return "workspace"
	}
	return "unknown"
}

// MonthStatus is how a month card is shown on the dashboard.
type MonthStatus int

const (
	MonthLocked MonthStatus = iota
	MonthCurrent
	MonthCompleted
)

func (s MonthStatus) String() string {
	switch s {
	case MonthLocked:
		return "locked"
	case MonthCurrent:
		return "current"
	case MonthCompleted:
		return "completed"
	}
	return "unknown"
}

// FeedbackItem is one graded task.
type FeedbackItem struct {
	ScenarioID  string
	EmailID     string
	TaskType    grading.TaskType
	UserAction  string
	AIFeedback  string
	Suggestions string
	Score       int
	At          time.Time
}

// State is the session-wide simulation state. It lives in memory for one
// session and is only mutated through the Controller.
type State struct {
	// CurrentMonth is the highest unlocked month. It never decreases.
	CurrentMonth int

	// Studio is empty until the user picks one.
	Studio scenario.StudioType

	// Scenario is the day being worked on; nil on the dashboard.
	Scenario *scenario.DailyScenario

	// Score is the saturating session score, 0..100.
	Score int

	// CompletedScenarios holds completed days as "<scenario id>@<month>"
	// in completion order, without duplicates. Fallback and pack days reuse
	// their ids across months, so the id alone does not name a day.
	CompletedScenarios []string

	// FeedbackHistory is append-only.
	FeedbackHistory []FeedbackItem
}

// NewState returns the state of a fresh session.
func NewState() *State {
	return &State{CurrentMonth: FirstMonth}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Scenario = s.Scenario.Clone()
	c.CompletedScenarios = slices.Clone(s.CompletedScenarios)
	c.FeedbackHistory = slices.Clone(s.FeedbackHistory)
	return &c
}

// AddScore applies the scoring policy: the task score is clamped to 0..100
// and its tenth, rounded up, is added to the session score, which
// saturates at 100.
func AddScore(score, taskScore int) int {
	taskScore = max(0, min(MaxScore, taskScore))
	return min(MaxScore, score+(taskScore+9)/10)
}

func (s *State) completed(key string) bool {
	return slices.Contains(s.CompletedScenarios, key)
}

func completionKey(sc *scenario.DailyScenario) string {
	return sc.ID + "@" + strconv.Itoa(sc.Month)
}
