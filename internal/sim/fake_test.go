package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
)

// fakeContent is a scriptable ContentProvider.
type fakeContent struct {
	mu sync.Mutex

	generate func(ctx context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error)
	evaluate func(ctx context.Context, userContent, taskContext string) (*grading.Result, error)
	assist   func(ctx context.Context, query string) (string, error)

	generateCalls int
	evaluateCalls int
	assistCalls   int
	lastTask      grading.TaskType
	lastContext   string
	lastStudio    scenario.StudioType
}

func (f *fakeContent) GenerateScenario(ctx context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error) {
	f.mu.Lock()
	f.generateCalls++
	fn := f.generate
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("offline")
	}
	return fn(ctx, month, studio)
}

func (f *fakeContent) Evaluate(ctx context.Context, task grading.TaskType, userContent, taskContext string, studio scenario.StudioType) (*grading.Result, error) {
	f.mu.Lock()
	f.evaluateCalls++
	f.lastTask = task
	f.lastContext = taskContext
	f.lastStudio = studio
	fn := f.evaluate
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("offline")
	}
	return fn(ctx, userContent, taskContext)
}

func (f *fakeContent) Assist(ctx context.Context, query string, _ scenario.StudioType) (string, error) {
	f.mu.Lock()
	f.assistCalls++
	fn := f.assist
	f.mu.Unlock()
	if fn == nil {
		return "", errors.New("offline")
	}
	return fn(ctx, query)
}

func (f *fakeContent) calls() (gen, eval, assist int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateCalls, f.evaluateCalls, f.assistCalls
}

// threeEmailDay builds a valid scenario with emails e1..e3.
func threeEmailDay(id string, month int) *scenario.DailyScenario {
	return &scenario.DailyScenario{
		ID:        id,
		Month:     month,
		DayTitle:  "Giornata piena",
		Objective: "Svuotare la posta",
		Emails: []scenario.Email{
			{ID: "e1", From: "Anna Conti", Subject: "Fattura", Body: "Manca la fattura di marzo.", Priority: scenario.PriorityHigh},
			{ID: "e2", From: "Luca Ferri", Subject: "Riunione", Body: "Spostiamo a giovedì?", Priority: scenario.PriorityNormal},
			{ID: "e3", From: "Promo", Subject: "Offerta", Body: "Solo oggi.", Priority: scenario.PriorityLow},
		},
		Events: []scenario.CalendarEvent{
			{ID: "ev1", Title: "Cliente", Start: "09:00", End: "10:00", Type: scenario.EventMeeting},
		},
	}
}

func generateDay(id string) func(context.Context, int, scenario.StudioType) (*scenario.DailyScenario, error) {
	return func(_ context.Context, month int, _ scenario.StudioType) (*scenario.DailyScenario, error) {
		return threeEmailDay(id, month), nil
	}
}

func scoreOf(score int) func(context.Context, string, string) (*grading.Result, error) {
	return func(context.Context, string, string) (*grading.Result, error) {
		return &grading.Result{Feedback: "Bene.", Score: score, Suggestions: "Più sintesi."}, nil
	}
}
