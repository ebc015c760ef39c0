package workspace

import "github.com/abhisek/studiosim/internal/sim"

// evaluatedMsg carries the result of grading a reply.
type evaluatedMsg struct {
	EmailID string
	Item    sim.FeedbackItem
	Err     error
}

// assistedMsg carries the assistant's draft for an email.
type assistedMsg struct {
	EmailID string
	Text    string
	Err     error
}

// DayCompletedMsg is sent to the screen below after the day is closed.
// Graded holds the tasks graded while this screen was open.
type DayCompletedMsg struct {
	Month    int
	DayTitle string
	Advanced bool
	Graded   []sim.FeedbackItem
}

// ExitedMsg is sent to the screen below after the workspace is left
// without completing the day.
type ExitedMsg struct{}
