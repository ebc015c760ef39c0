package sim

import (
	"context"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
)

// ContentProvider is the generative backend. Every method may be slow and
// may fail; callers bound them with a timeout and absorb failures.
type ContentProvider interface {
	// GenerateScenario returns one workday for the month and studio.
	GenerateScenario(ctx context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error)

	// Evaluate grades the user's work on a task.
	Evaluate(ctx context.Context, task grading.TaskType, userContent, taskContext string, studio scenario.StudioType) (*grading.Result, error)

	// Assist answers a free-form question, typically a request for a draft.
	Assist(ctx context.Context, query string, studio scenario.StudioType) (string, error)
}
