package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // LLM events only
	SessionID string    // session and feedback events only
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// Session actions recorded in session_events.
const (
	ActionStudioSelected    = "studio_selected"
	ActionMonthStarted      = "month_started"
	ActionScenarioCompleted = "scenario_completed"
	ActionWorkspaceExited   = "workspace_exited"
	ActionSessionReset      = "session_reset"
)

// SessionEventData captures a simulation state transition.
type SessionEventData struct {
	SessionID  string
	Action     string
	Studio     string
	Month      int
	ScenarioID string
	// Fallback is set when the offline scenario replaced a generated one.
	Fallback bool
	Score    int
	Detail   string
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// FeedbackEventData captures one graded task.
type FeedbackEventData struct {
	SessionID    string
	ScenarioID   string
	Studio       string
	Month        int
	TaskType     string
	EmailID      string
	UserAction   string
	AIFeedback   string
	Suggestions  string
	Score        int
	SessionScore int
}

// FeedbackEventRecord is a stored feedback event.
type FeedbackEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	FeedbackEventData
}

// LLMUsageStat aggregates LLM usage for one purpose or model.
type LLMUsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records a simulation state transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendFeedback records a graded task.
	AppendFeedback(ctx context.Context, data FeedbackEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)

	// QuerySessionEvents returns session events, oldest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// QueryFeedback returns feedback events, newest first.
	QueryFeedback(ctx context.Context, opts QueryOpts) ([]FeedbackEventRecord, error)
}
