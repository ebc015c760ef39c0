package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns prepends the columns every event table shares: the row id,
// the global sequence and a unix-millisecond timestamp.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, cols...)
}

// eventTable builds a table keyed on id with an index on timestamp and on
// each of the indexed columns.
func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: cols[:1],
	}
	for _, ix := range append([]string{"timestamp"}, indexed...) {
		for _, c := range cols {
			if c.Name != ix {
				continue
			}
			t.Indexes = append(t.Indexes, &schema.Index{
				Name:    name + "_" + ix,
				Columns: []*schema.Column{c},
			})
		}
	}
	return t
}

var (
	llmRequestEventsTable = eventTable("llm_request_events", eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	), "purpose", "model")

	sessionEventsTable = eventTable("session_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "studio", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "month", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "scenario_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "fallback", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "detail", Type: field.TypeString, Default: ""},
	), "session_id")

	feedbackEventsTable = eventTable("feedback_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "scenario_id", Type: field.TypeString},
		&schema.Column{Name: "studio", Type: field.TypeString},
		&schema.Column{Name: "month", Type: field.TypeInt},
		&schema.Column{Name: "task_type", Type: field.TypeString},
		&schema.Column{Name: "email_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "user_action", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "ai_feedback", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "suggestions", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "session_score", Type: field.TypeInt},
	), "session_id")

	// eventTables lists every table the migrator manages.
	eventTables = []*schema.Table{
		llmRequestEventsTable,
		sessionEventsTable,
		feedbackEventsTable,
	}
)

// migrate creates missing tables, columns and indexes. It never drops
// anything.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, eventTables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
