package grading

import "fmt"

// TaskType names the kind of work being graded.
type TaskType string

const (
	TaskEmailReply    TaskType = "EMAIL_REPLY"
	TaskCalendarFix   TaskType = "CALENDAR_FIX"
	TaskDocumentDraft TaskType = "DOCUMENT_DRAFT"
	TaskChatResponse  TaskType = "CHAT_RESPONSE"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskEmailReply, TaskCalendarFix, TaskDocumentDraft, TaskChatResponse:
		return true
	}
	return false
}

// Score bounds for a single graded task.
const (
	MinScore = 1
	MaxScore = 100
)

// Result is the outcome of grading one task.
type Result struct {
	Feedback    string
	Score       int
	Suggestions string
}

// EvalRequest is the input for grading one task.
type EvalRequest struct {
	Task        TaskType
	UserContent string
	Context     string

	// Studio is the display label of the studio the user works in,
	// e.g. "Studio Legale".
	Studio string
}

func (r EvalRequest) validate() error {
	if !r.Task.Valid() {
		return fmt.Errorf("unknown task type %q", r.Task)
	}
	if r.UserContent == "" {
		return fmt.Errorf("nothing to grade")
	}
	return nil
}
