package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendFeedback(ctx context.Context, data FeedbackEventData) error {
	err := r.insert(ctx, feedbackEventsTable.Name,
		[]string{
			"session_id", "scenario_id", "studio", "month", "task_type", "email_id",
			"user_action", "ai_feedback", "suggestions", "score", "session_score",
		},
		data.SessionID, data.ScenarioID, data.Studio, data.Month, data.TaskType, data.EmailID,
		data.UserAction, data.AIFeedback, data.Suggestions, data.Score, data.SessionScore,
	)
	if err != nil {
		return fmt.Errorf("save feedback event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryFeedback(ctx context.Context, opts QueryOpts) ([]FeedbackEventRecord, error) {
	sel := selectEvents(feedbackEventsTable.Name, []string{
		"id", "sequence", "timestamp", "session_id", "scenario_id", "studio", "month",
		"task_type", "email_id", "user_action", "ai_feedback", "suggestions", "score", "session_score",
	}, opts, true, sessionFilter(opts)...)

	var out []FeedbackEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e FeedbackEventRecord
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.ScenarioID, &e.Studio,
			&e.Month, &e.TaskType, &e.EmailID, &e.UserAction, &e.AIFeedback, &e.Suggestions,
			&e.Score, &e.SessionScore); err != nil {
			return fmt.Errorf("scan feedback event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query feedback events: %w", err)
	}
	return out, nil
}
