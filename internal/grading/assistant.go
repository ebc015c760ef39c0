package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studiosim/internal/llm"
)

// Assistant answers free-form questions from the workspace, most often
// requests for a draft reply.
type Assistant struct {
	provider llm.Provider
	cfg      Config
}

// NewAssistant creates an Assistant.
func NewAssistant(provider llm.Provider, cfg Config) *Assistant {
	return &Assistant{provider: provider, cfg: cfg}
}

// Ask returns the model's plain-text answer to query.
func (a *Assistant) Ask(ctx context.Context, query, studio string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("empty assistant query")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAssist)

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: assistSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAssistMessage(query, studio, a.cfg.Language)},
		},
		MaxTokens:   a.cfg.AssistMaxTokens,
		Temperature: a.cfg.AssistTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM assist failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &llm.ErrInvalidResponse{Err: fmt.Errorf("empty assistant answer")}
	}
	return text, nil
}
