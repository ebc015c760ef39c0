package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/studiosim/internal/store"
)

const recordTimeout = 2 * time.Second

// recorder writes the session audit trail. It never fails the caller:
// repository errors are logged and dropped.
type recorder struct {
	events store.EventRepo
	logger *slog.Logger
}

func (r recorder) session(data store.SessionEventData) {
	r.logger.Info("session event",
		"session_id", data.SessionID,
		"action", data.Action,
		"studio", data.Studio,
		"month", data.Month,
		"scenario_id", data.ScenarioID,
		"fallback", data.Fallback,
		"score", data.Score,
	)
	if r.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := r.events.AppendSessionEvent(ctx, data); err != nil {
		r.logger.Warn("failed to record session event", "action", data.Action, "error", err)
	}
}

func (r recorder) feedback(data store.FeedbackEventData) {
	r.logger.Info("task graded",
		"session_id", data.SessionID,
		"scenario_id", data.ScenarioID,
		"email_id", data.EmailID,
		"score", data.Score,
		"session_score", data.SessionScore,
	)
	if r.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := r.events.AppendFeedback(ctx, data); err != nil {
		r.logger.Warn("failed to record feedback event", "scenario_id", data.ScenarioID, "error", err)
	}
}
