// Package content implements the simulation's content backend on top of an
// LLM provider, with an optional hand-written scenario pack.
package content

import (
	"context"
	"fmt"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/llm"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/sim"
)

// ErrUnavailable is returned by every call when no LLM is configured. It
// wraps sim.ErrProviderUnavailable so the workspace closes replies instead
// of retrying them.
var ErrUnavailable = fmt.Errorf("%w: no LLM configured", sim.ErrProviderUnavailable)

// Config groups the settings of the LLM-backed services.
type Config struct {
	Generator scenario.GeneratorConfig
	Grading   grading.Config
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Generator: scenario.DefaultGeneratorConfig(),
		Grading:   grading.DefaultConfig(),
	}
}

// WithLanguage returns a copy of cfg producing content in language.
func (c Config) WithLanguage(language string) Config {
	if language != "" {
		c.Generator.Language = language
		c.Grading.Language = language
	}
	return c
}

// Provider generates scenarios, grades work and drafts replies.
type Provider struct {
	llm       llm.Provider
	pack      *scenario.Pack
	generator *scenario.Generator
	evaluator *grading.Evaluator
	assistant *grading.Assistant
}

// New creates a Provider. A nil llm.Provider gives a degraded provider:
// scenarios come from pack when it has one, every other call fails with
// ErrUnavailable.
func New(p llm.Provider, pack *scenario.Pack, cfg Config) *Provider {
	prov := &Provider{llm: p, pack: pack}
	if p != nil {
		prov.generator = scenario.NewGenerator(p, cfg.Generator)
		prov.evaluator = grading.NewEvaluator(p, cfg.Grading)
		prov.assistant = grading.NewAssistant(p, cfg.Grading)
	}
	return prov
}

// Online reports whether an LLM backs this provider.
func (p *Provider) Online() bool {
	return p.llm != nil
}

// ModelID returns the model in use, or "" when offline.
func (p *Provider) ModelID() string {
	if p.llm == nil {
		return ""
	}
	return p.llm.ModelID()
}

// GenerateScenario returns a pack scenario for the month and studio when
// one exists, and otherwise asks the LLM.
func (p *Provider) GenerateScenario(ctx context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error) {
	if p.pack != nil {
		if sc, ok := p.pack.Pick(month, studio); ok {
			return sc, nil
		}
	}
	if p.generator == nil {
		return nil, ErrUnavailable
	}
	return p.generator.Generate(ctx, month, studio)
}

// Evaluate grades the user's work on a task.
func (p *Provider) Evaluate(ctx context.Context, task grading.TaskType, userContent, taskContext string, studio scenario.StudioType) (*grading.Result, error) {
	if p.evaluator == nil {
		return nil, ErrUnavailable
	}
	if !studio.Valid() {
		return nil, fmt.Errorf("unknown studio %q", studio)
	}
	return p.evaluator.Evaluate(ctx, grading.EvalRequest{
		Task:        task,
		UserContent: userContent,
		Context:     taskContext,
		Studio:      studio.Label(),
	})
}

// Assist answers a free-form question from the workspace.
func (p *Provider) Assist(ctx context.Context, query string, studio scenario.StudioType) (string, error) {
	if p.assistant == nil {
		return "", ErrUnavailable
	}
	return p.assistant.Ask(ctx, query, studio.Label())
}
