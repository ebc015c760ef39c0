package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studiosim/internal/llm"
)

// Evaluator grades user work with the LLM.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(provider llm.Provider, cfg Config) *Evaluator {
	return &Evaluator{provider: provider, cfg: cfg}
}

type resultOutput struct {
	Feedback    string `json:"feedback"`
	Score       int    `json:"score"`
	Suggestions string `json:"suggestions"`
}

// Evaluate grades one task. A response outside the expected shape, or with
// a score outside 1..100, is an error.
func (e *Evaluator) Evaluate(ctx context.Context, req EvalRequest) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluate)

	llmReq := llm.Request{
		System: evalSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvalMessage(req, e.cfg.Language)},
		},
		Schema:      ResultSchema,
		MaxTokens:   e.cfg.EvalMaxTokens,
		Temperature: e.cfg.EvalTemperature,
	}

	resp, err := e.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	var out resultOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}
	if out.Score < MinScore || out.Score > MaxScore {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("score %d out of range %d..%d", out.Score, MinScore, MaxScore),
		}
	}
	if strings.TrimSpace(out.Feedback) == "" {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty feedback")}
	}

	return &Result{
		Feedback:    out.Feedback,
		Score:       out.Score,
		Suggestions: out.Suggestions,
	}, nil
}
