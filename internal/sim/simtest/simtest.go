// Package simtest provides a scriptable sim.ContentProvider and fixture
// scenarios for tests of packages built on the simulation controller.
package simtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/sim"
)

// ErrOffline is returned by Content when no function is scripted.
var ErrOffline = errors.New("simtest: offline")

// Content is a sim.ContentProvider whose behavior is set by its fields.
// A nil function makes the matching call fail with ErrOffline.
type Content struct {
	Generate func(month int, studio scenario.StudioType) (*scenario.DailyScenario, error)
	Grade    func(userContent string) (*grading.Result, error)
	Draft    func(query string) (string, error)

	mu      sync.Mutex
	queries []string
}

var _ sim.ContentProvider = (*Content)(nil)

func (c *Content) GenerateScenario(_ context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error) {
	if c.Generate == nil {
		return nil, ErrOffline
	}
	return c.Generate(month, studio)
}

func (c *Content) Evaluate(_ context.Context, _ grading.TaskType, userContent, _ string, _ scenario.StudioType) (*grading.Result, error) {
	if c.Grade == nil {
		return nil, ErrOffline
	}
	return c.Grade(userContent)
}

func (c *Content) Assist(_ context.Context, query string, _ scenario.StudioType) (string, error) {
	c.mu.Lock()
	c.queries = append(c.queries, query)
	c.mu.Unlock()
	if c.Draft == nil {
		return "", ErrOffline
	}
	return c.Draft(query)
}

// Queries returns the assistant queries received so far.
func (c *Content) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

// Online returns a Content that serves Day for every month and grades
// every reply with score.
func Online(score int) *Content {
	return &Content{
		Generate: func(month int, studio scenario.StudioType) (*scenario.DailyScenario, error) {
			d := Day(fmt.Sprintf("day-%02d", month), month)
			d.Studio = studio
			return d, nil
		},
		Grade: func(string) (*grading.Result, error) {
			return &grading.Result{Feedback: "Chiaro e cortese.", Score: score, Suggestions: "Firma sempre."}, nil
		},
		Draft: func(string) (string, error) {
			return "Gentile cliente, ...", nil
		},
	}
}

// Day builds a valid two-email scenario with ids e1 and e2 and two
// overlapping events.
func Day(id string, month int) *scenario.DailyScenario {
	return &scenario.DailyScenario{
		ID:          id,
		Month:       month,
		DayTitle:    "Lunedì in studio",
		Description: "Una giornata normale.",
		Objective:   "Rispondere a tutti",
		Difficulty:  2,
		Emails: []scenario.Email{
			{ID: "e1", From: "Anna Conti", Subject: "Fattura", Body: "Manca la fattura di marzo.", Date: "09:12", Priority: scenario.PriorityHigh},
			{ID: "e2", From: "Luca Ferri", Subject: "Riunione", Body: "Spostiamo a giovedì?", Date: "10:40", Priority: scenario.PriorityNormal},
		},
		Events: []scenario.CalendarEvent{
			{ID: "c1", Title: "Cliente Bianchi", Start: "09:00", End: "10:00", Type: scenario.EventMeeting},
			{ID: "c2", Title: "Chiamata fornitore", Start: "09:30", End: "09:45", Type: scenario.EventCall},
		},
	}
}

// Workday returns a controller already inside the workspace for month 1
// of a legal studio, plus the content behind it.
func Workday(score int) (*sim.Controller, *Content, error) {
	content := Online(score)
	ctrl := sim.NewController(sim.NewState(), content)
	if err := ctrl.SelectStudio(scenario.StudioLegal); err != nil {
		return nil, nil, err
	}
	if _, err := ctrl.StartMonth(context.Background(), 1); err != nil {
		return nil, nil, err
	}
	return ctrl, content, nil
}
