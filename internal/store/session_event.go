package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable.Name,
		[]string{"session_id", "action", "studio", "month", "scenario_id", "fallback", "score", "detail"},
		data.SessionID, data.Action, data.Studio, data.Month, data.ScenarioID,
		data.Fallback, data.Score, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	sel := selectEvents(sessionEventsTable.Name, []string{
		"id", "sequence", "timestamp", "session_id", "action",
		"studio", "month", "scenario_id", "fallback", "score", "detail",
	}, opts, false, sessionFilter(opts)...)

	var out []SessionEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var e SessionEventRecord
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Action, &e.Studio,
			&e.Month, &e.ScenarioID, &e.Fallback, &e.Score, &e.Detail); err != nil {
			return fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
