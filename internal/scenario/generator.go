package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/studiosim/internal/llm"
)

// Generator produces workdays with the LLM provider.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewGenerator creates a Generator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg GeneratorConfig) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// scenarioOutput is the raw LLM response before validation.
type scenarioOutput struct {
	DayTitle    string          `json:"dayTitle"`
	Description string          `json:"description"`
	Objective   string          `json:"objective"`
	Difficulty  int             `json:"difficulty"`
	Emails      []Email         `json:"emails"`
	Events      []CalendarEvent `json:"events"`
}

// Generate asks the model for one day of the given month and studio. The
// result carries a fresh id and the requested month and has passed Validate.
func (g *Generator) Generate(ctx context.Context, month int, studio StudioType) (*DailyScenario, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range 1..12", month)
	}
	if !studio.Valid() {
		return nil, fmt.Errorf("unknown studio %q", studio)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeScenario)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(month, studio, g.config)},
		},
		Schema:      ScenarioSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM scenario generation failed: %w", err)
	}

	raw, err := decodeStrict(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM scenario: %w", err)
	}

	sc := &DailyScenario{
		ID:          uuid.NewString(),
		Month:       month,
		Studio:      studio,
		DayTitle:    raw.DayTitle,
		Description: raw.Description,
		Objective:   raw.Objective,
		Difficulty:  raw.Difficulty,
		Emails:      raw.Emails,
		Events:      raw.Events,
	}
	if err := Validate(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// decodeStrict rejects unknown fields and trailing data.
func decodeStrict(content json.RawMessage) (*scenarioOutput, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	var out scenarioOutput
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after scenario object")
	}
	return &out, nil
}
