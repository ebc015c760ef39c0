package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/store"
)

// AssistUnavailable is what RequestAssist returns when the provider
// cannot help.
const AssistUnavailable = "Sorry, the assistant is not available right now. Try again in a moment."

// UngradedFeedback is the feedback of a reply closed without grading
// because no evaluator is available. Such replies score 0.
const UngradedFeedback = "Your reply was filed, but it could not be graded: the evaluator is offline. No points were awarded."

// Workspace handles the tasks of one scenario: grading replies and asking
// the assistant for drafts. At most one provider call runs at a time.
type Workspace struct {
	ctrl       *Controller
	scenarioID string
	instance   uint64

	mu     sync.Mutex
	busy   bool
	drafts map[string]string
}

// NewWorkspace binds a Workspace to the controller's current scenario.
func NewWorkspace(ctrl *Controller) (*Workspace, error) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if ctrl.phase != PhaseWorkspace {
		return nil, ErrWrongPhase
	}
	return &Workspace{
		ctrl:       ctrl,
		scenarioID: ctrl.state.Scenario.ID,
		instance:   ctrl.instance,
		drafts:     make(map[string]string),
	}, nil
}

// Busy reports whether a provider call is in flight.
func (w *Workspace) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Draft returns the draft reply for emailID.
func (w *Workspace) Draft(emailID string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.drafts[emailID]
}

// SetDraft stores a draft reply for emailID.
func (w *Workspace) SetDraft(emailID, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drafts[emailID] = text
}

// SubmitEmailReply grades content as the reply to emailID. On success the
// feedback is appended to the history, the email is resolved and the
// session score updated, in that order. On provider failure nothing
// changes and the email can be replied to again, except when the provider
// is unavailable altogether: then the reply is closed with a zero score
// and UngradedFeedback.
func (w *Workspace) SubmitEmailReply(ctx context.Context, emailID, content string) (FeedbackItem, error) {
	if strings.TrimSpace(content) == "" {
		return FeedbackItem{}, ErrEmptyReply
	}
	email, studio, err := w.begin(emailID)
	if err != nil {
		return FeedbackItem{}, err
	}
	defer w.end()

	res, err := w.evaluate(ctx, email, content, studio)
	if errors.Is(err, ErrProviderUnavailable) {
		w.ctrl.rec.logger.Warn("evaluator unavailable, filing reply ungraded", "email_id", emailID, "error", err)
		res, err = &grading.Result{Feedback: UngradedFeedback}, nil
	}
	if err != nil {
		w.ctrl.rec.logger.Warn("evaluation failed", "email_id", emailID, "error", err)
		return FeedbackItem{}, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	item := FeedbackItem{
		ScenarioID:  w.scenarioID,
		EmailID:     emailID,
		TaskType:    grading.TaskEmailReply,
		UserAction:  content,
		AIFeedback:  res.Feedback,
		Suggestions: res.Suggestions,
		Score:       res.Score,
		At:          time.Now(),
	}
	if err := w.ctrl.applyFeedback(w.instance, item); err != nil {
		return FeedbackItem{}, err
	}

	w.mu.Lock()
	delete(w.drafts, emailID)
	w.mu.Unlock()
	return item, nil
}

func (w *Workspace) evaluate(ctx context.Context, email scenario.Email, content string, studio scenario.StudioType) (*grading.Result, error) {
	if w.ctrl.content == nil {
		return nil, ErrProviderUnavailable
	}
	callCtx, cancel := withTimeout(ctx, w.ctrl.cfg.CallTimeout)
	defer cancel()

	taskCtx := grading.EmailReplyContext(email.From, email.Subject, email.Body)
	res, err := w.ctrl.content.Evaluate(callCtx, grading.TaskEmailReply, content, taskCtx, studio)
	switch {
	case err != nil:
		return nil, err
	case res == nil:
		return nil, fmt.Errorf("provider returned no result")
	case res.Score < grading.MinScore || res.Score > grading.MaxScore:
		return nil, fmt.Errorf("score %d out of range", res.Score)
	}
	return res, nil
}

// RequestAssist asks the assistant for a draft reply to emailID and stores
// it as the email's draft. Provider failures are not errors: the apology
// text is returned instead and the draft is left alone. The returned error
// only reports guard failures such as ErrBusy or ErrUnknownEmail.
func (w *Workspace) RequestAssist(ctx context.Context, emailID string) (string, error) {
	email, studio, err := w.begin(emailID)
	if err != nil {
		return "", err
	}
	defer w.end()

	if w.ctrl.content == nil {
		return AssistUnavailable, nil
	}
	callCtx, cancel := withTimeout(ctx, w.ctrl.cfg.CallTimeout)
	defer cancel()
	text, err := w.ctrl.content.Assist(callCtx, grading.DraftQuery(email.From, email.Subject, email.Body), studio)
	if err != nil || strings.TrimSpace(text) == "" {
		w.ctrl.rec.logger.Warn("assist failed", "email_id", emailID, "error", err)
		return AssistUnavailable, nil
	}

	if w.ctrl.resolved(w.instance, emailID) {
		return text, nil
	}
	w.mu.Lock()
	w.drafts[emailID] = text
	w.mu.Unlock()
	return text, nil
}

// begin checks the guards for a provider call on emailID and marks the
// workspace busy.
func (w *Workspace) begin(emailID string) (scenario.Email, scenario.StudioType, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return scenario.Email{}, "", ErrBusy
	}
	email, studio, err := w.ctrl.lookupEmail(w.instance, emailID)
	if err != nil {
		return scenario.Email{}, "", err
	}
	w.busy = true
	return email, studio, nil
}

func (w *Workspace) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// lookupEmail returns an unresolved email of the scenario instance, which
// must still be the one in the workspace.
func (c *Controller) lookupEmail(instance uint64, emailID string) (scenario.Email, scenario.StudioType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseWorkspace || c.instance != instance {
		return scenario.Email{}, "", ErrWrongPhase
	}
	email, ok := c.state.Scenario.Email(emailID)
	if !ok {
		return scenario.Email{}, "", fmt.Errorf("%w: %q", ErrUnknownEmail, emailID)
	}
	if c.store.IsResolved(emailID) {
		return scenario.Email{}, "", fmt.Errorf("%w: %q", ErrAlreadyResolved, emailID)
	}
	return email, c.state.Studio, nil
}

func (c *Controller) resolved(instance uint64, emailID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseWorkspace || c.instance != instance {
		return true
	}
	return c.store.IsResolved(emailID)
}

// applyFeedback commits a graded task as one unit: history, resolution,
// score. It fails when the scenario instance has left the workspace.
func (c *Controller) applyFeedback(instance uint64, item FeedbackItem) error {
	c.mu.Lock()
	if c.phase != PhaseWorkspace || c.instance != instance {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if c.store.IsResolved(item.EmailID) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrAlreadyResolved, item.EmailID)
	}
	c.state.FeedbackHistory = append(c.state.FeedbackHistory, item)
	c.store.MarkResolved(item.EmailID)
	c.state.Score = AddScore(c.state.Score, item.Score)

	ev := store.FeedbackEventData{
		SessionID:    c.sessionID,
		ScenarioID:   item.ScenarioID,
		Studio:       string(c.state.Studio),
		Month:        c.state.Scenario.Month,
		TaskType:     string(item.TaskType),
		EmailID:      item.EmailID,
		UserAction:   item.UserAction,
		AIFeedback:   item.AIFeedback,
		Suggestions:  item.Suggestions,
		Score:        item.Score,
		SessionScore: c.state.Score,
	}
	c.mu.Unlock()

	c.rec.feedback(ev)
	return nil
}
