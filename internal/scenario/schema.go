package scenario

import "github.com/abhisek/studiosim/internal/llm"

// ScenarioSchema defines the JSON schema for generated workdays. The id and
// month are stamped locally, so the model never supplies them.
var ScenarioSchema = &llm.Schema{
	Name:        "daily-scenario",
	Description: "One simulated workday for an office assistant: inbox, agenda and objective",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dayTitle": map[string]any{
				"type":        "string",
				"description": "Short title for the day",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Two or three sentences setting the scene",
			},
			"objective": map[string]any{
				"type":        "string",
				"description": "The main goal of the day",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Severity from 1 (routine) to 5 (crisis)",
			},
			"emails": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string", "description": "Unique within the day, e.g. e1"},
						"from":     map[string]any{"type": "string", "description": "Plausible sender name"},
						"subject":  map[string]any{"type": "string"},
						"body":     map[string]any{"type": "string"},
						"isRead":   map[string]any{"type": "boolean"},
						"date":     map[string]any{"type": "string", "description": "Arrival time, HH:MM"},
						"priority": map[string]any{"type": "string", "enum": []any{"High", "Normal", "Low"}},
					},
					"required":             []any{"id", "from", "subject", "body", "isRead", "date", "priority"},
					"additionalProperties": false,
				},
			},
			"events": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string", "description": "Unique within the day, e.g. ev1"},
						"title":       map[string]any{"type": "string"},
						"start":       map[string]any{"type": "string", "pattern": clockPattern, "description": "HH:MM format for today"},
						"end":         map[string]any{"type": "string", "pattern": clockPattern, "description": "HH:MM format for today"},
						"type":        map[string]any{"type": "string", "enum": []any{"meeting", "call", "personal", "other"}},
						"description": map[string]any{"type": "string", "description": "Optional notes, empty string if none"},
					},
					"required":             []any{"id", "title", "start", "end", "type", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"dayTitle", "description", "objective", "difficulty", "emails", "events"},
		"additionalProperties": false,
	},
}
