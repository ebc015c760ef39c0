package grading

import "github.com/abhisek/studiosim/internal/llm"

// ResultSchema defines the JSON schema for a graded task.
var ResultSchema = &llm.Schema{
	Name:        "task-grade",
	Description: "The boss's verdict on a task completed by the assistant",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "Direct comment to the assistant (2-4 sentences)",
			},
			"score": map[string]any{
				"type":        "integer",
				"description": "Grade from 1 to 100",
			},
			"suggestions": map[string]any{
				"type":        "string",
				"description": "How to do better next time",
			},
		},
		"required":             []any{"feedback", "score", "suggestions"},
		"additionalProperties": false,
	},
}
