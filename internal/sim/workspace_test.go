package sim

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studiosim/internal/grading"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/store"
)

// inWorkspace returns a controller in the workspace of a three-email day
// and a Workspace bound to it.
func inWorkspace(t *testing.T, content *fakeContent, opts ...Option) (*Controller, *Workspace) {
	t.Helper()
	if content.generate == nil {
		content.generate = generateDay("day")
	}
	c := atDashboard(t, content, opts...)
	_, err := c.StartMonth(t.Context(), 1)
	require.NoError(t, err)
	ws, err := NewWorkspace(c)
	require.NoError(t, err)
	return c, ws
}

func TestNewWorkspace_WrongPhase(t *testing.T) {
	c := atDashboard(t, &fakeContent{})
	_, err := NewWorkspace(c)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSubmitEmailReply_Success(t *testing.T) {
	content := &fakeContent{evaluate: scoreOf(82)}
	c, ws := inWorkspace(t, content)
	ws.SetDraft("e1", "bozza")

	item, err := ws.SubmitEmailReply(t.Context(), "e1", "ok")
	require.NoError(t, err)
	assert.Equal(t, 82, item.Score)
	assert.Equal(t, "e1", item.EmailID)
	assert.Equal(t, "day", item.ScenarioID)
	assert.Equal(t, grading.TaskEmailReply, item.TaskType)
	assert.Equal(t, "ok", item.UserAction)
	assert.Equal(t, "Bene.", item.AIFeedback)
	assert.Equal(t, "Più sintesi.", item.Suggestions)

	snap := c.Snapshot()
	require.Len(t, snap.FeedbackHistory, 1)
	assert.Equal(t, item, snap.FeedbackHistory[0])
	assert.Equal(t, 9, snap.Score)
	assert.NotContains(t, emailIDs(c.Store()), "e1")
	assert.Empty(t, ws.Draft("e1"), "draft is cleared after sending")

	assert.Equal(t, grading.TaskEmailReply, content.lastTask)
	assert.Equal(t, scenario.StudioLegal, content.lastStudio)
	assert.Equal(t, `Reply to the email from Anna Conti with subject "Fattura". Body: Manca la fattura di marzo.`, content.lastContext)
}

func TestSubmitEmailReply_WhitespaceRejected(t *testing.T) {
	content := &fakeContent{evaluate: scoreOf(50)}
	c, ws := inWorkspace(t, content)

	for _, reply := range []string{"", "   ", "\n\t "} {
		_, err := ws.SubmitEmailReply(t.Context(), "e1", reply)
		assert.ErrorIs(t, err, ErrEmptyReply)
	}
	assert.Contains(t, emailIDs(c.Store()), "e1")
	assert.Empty(t, c.Snapshot().FeedbackHistory)
	_, eval, _ := content.calls()
	assert.Zero(t, eval)
}

func TestSubmitEmailReply_Guards(t *testing.T) {
	content := &fakeContent{evaluate: scoreOf(50)}
	_, ws := inWorkspace(t, content)

	_, err := ws.SubmitEmailReply(t.Context(), "e9", "ok")
	assert.ErrorIs(t, err, ErrUnknownEmail)

	_, err = ws.SubmitEmailReply(t.Context(), "e1", "ok")
	require.NoError(t, err)
	_, err = ws.SubmitEmailReply(t.Context(), "e1", "ancora")
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	_, eval, _ := content.calls()
	assert.Equal(t, 1, eval)
}

func TestSubmitEmailReply_ProviderFailureIsRetryable(t *testing.T) {
	content := &fakeContent{evaluate: func(context.Context, string, string) (*grading.Result, error) {
		return nil, errors.New("503")
	}}
	c, ws := inWorkspace(t, content)

	_, err := ws.SubmitEmailReply(t.Context(), "e2", "ok")
	assert.ErrorIs(t, err, ErrProviderFailure)
	snap := c.Snapshot()
	assert.Empty(t, snap.FeedbackHistory)
	assert.Zero(t, snap.Score)
	assert.Contains(t, emailIDs(c.Store()), "e2")
	assert.False(t, ws.Busy())

	content.mu.Lock()
	content.evaluate = scoreOf(40)
	content.mu.Unlock()
	_, err = ws.SubmitEmailReply(t.Context(), "e2", "ok")
	require.NoError(t, err)
	assert.NotContains(t, emailIDs(c.Store()), "e2")
}

func TestSubmitEmailReply_OutOfRangeScoreIsFailure(t *testing.T) {
	c, ws := inWorkspace(t, &fakeContent{evaluate: scoreOf(0)})
	_, err := ws.SubmitEmailReply(t.Context(), "e1", "ok")
	assert.ErrorIs(t, err, ErrProviderFailure)
	assert.Contains(t, emailIDs(c.Store()), "e1")
}

func TestSubmitEmailReply_Busy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	content := &fakeContent{evaluate: func(context.Context, string, string) (*grading.Result, error) {
		close(started)
		<-release
		return &grading.Result{Feedback: "ok", Score: 60}, nil
	}}
	_, ws := inWorkspace(t, content)

	errCh := make(chan error, 1)
	go func() {
		_, err := ws.SubmitEmailReply(context.Background(), "e1", "prima")
		errCh <- err
	}()
	<-started

	assert.True(t, ws.Busy())
	_, err := ws.SubmitEmailReply(t.Context(), "e2", "seconda")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = ws.RequestAssist(t.Context(), "e2")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, ws.Busy())
}

func TestSubmitEmailReply_AfterExit(t *testing.T) {
	c, ws := inWorkspace(t, &fakeContent{evaluate: scoreOf(50)})
	require.NoError(t, c.ExitWorkspace())
	_, err := ws.SubmitEmailReply(t.Context(), "e1", "ok")
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSubmitEmailReply_StaleAfterReplayOfSameDay(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	content := &fakeContent{evaluate: func(context.Context, string, string) (*grading.Result, error) {
		close(started)
		<-release
		return &grading.Result{Feedback: "ok", Score: 90}, nil
	}}
	// No generator: both days are the offline scenario and share its id.
	c := atDashboard(t, content)
	_, err := c.StartMonth(t.Context(), 1)
	require.NoError(t, err)
	stale, err := NewWorkspace(c)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := stale.SubmitEmailReply(context.Background(), scenario.FallbackEmailID, "ok")
		errCh <- err
	}()
	<-started

	require.NoError(t, c.ExitWorkspace())
	sc, err := c.StartMonth(t.Context(), 1)
	require.NoError(t, err)
	require.True(t, scenario.IsFallback(sc))

	close(release)
	assert.ErrorIs(t, <-errCh, ErrWrongPhase)

	snap := c.Snapshot()
	assert.Empty(t, snap.FeedbackHistory)
	assert.Zero(t, snap.Score)
	assert.Contains(t, emailIDs(c.Store()), scenario.FallbackEmailID)

	_, err = stale.RequestAssist(t.Context(), scenario.FallbackEmailID)
	assert.ErrorIs(t, err, ErrWrongPhase)

	fresh, err := NewWorkspace(c)
	require.NoError(t, err)
	content.mu.Lock()
	content.evaluate = scoreOf(70)
	content.mu.Unlock()
	_, err = fresh.SubmitEmailReply(t.Context(), scenario.FallbackEmailID, "ok")
	require.NoError(t, err)
	assert.Empty(t, emailIDs(c.Store()))
}

func TestSubmitEmailReply_UnavailableFilesUngraded(t *testing.T) {
	content := &fakeContent{evaluate: func(context.Context, string, string) (*grading.Result, error) {
		return nil, fmt.Errorf("%w: no key", ErrProviderUnavailable)
	}}
	c, ws := inWorkspace(t, content)
	ws.SetDraft("e1", "bozza")

	item, err := ws.SubmitEmailReply(t.Context(), "e1", "ok")
	require.NoError(t, err)
	assert.Zero(t, item.Score)
	assert.Equal(t, UngradedFeedback, item.AIFeedback)
	assert.Equal(t, "ok", item.UserAction)

	snap := c.Snapshot()
	require.Len(t, snap.FeedbackHistory, 1)
	assert.Zero(t, snap.Score)
	assert.NotContains(t, emailIDs(c.Store()), "e1")
	assert.Empty(t, ws.Draft("e1"))
}

func TestNilContent_CareerStillProgresses(t *testing.T) {
	c := atDashboard(t, nil)

	for month := 1; month <= 3; month++ {
		sc, err := c.StartMonth(t.Context(), month)
		require.NoError(t, err)
		ws, err := NewWorkspace(c)
		require.NoError(t, err)

		text, err := ws.RequestAssist(t.Context(), sc.Emails[0].ID)
		require.NoError(t, err)
		assert.Equal(t, AssistUnavailable, text)

		for _, e := range sc.Emails {
			item, err := ws.SubmitEmailReply(t.Context(), e.ID, "Gentile cliente, ricevuto.")
			require.NoError(t, err)
			assert.Equal(t, UngradedFeedback, item.AIFeedback)
		}
		advanced, err := c.CompleteScenario()
		require.NoError(t, err)
		assert.True(t, advanced)
	}

	snap := c.Snapshot()
	assert.Equal(t, 4, snap.CurrentMonth)
	assert.Zero(t, snap.Score)
	assert.Equal(t, []string{"fallback-1@1", "fallback-1@2", "fallback-1@3"}, snap.CompletedScenarios)
}

func TestRequestAssist(t *testing.T) {
	content := &fakeContent{assist: func(_ context.Context, query string) (string, error) {
		if !strings.Contains(query, "Luca Ferri") || !strings.Contains(query, "Riunione") {
			return "", errors.New("bad query")
		}
		return "Gentile Luca, giovedì va benissimo.", nil
	}}
	c, ws := inWorkspace(t, content)

	text, err := ws.RequestAssist(t.Context(), "e2")
	require.NoError(t, err)
	assert.Equal(t, "Gentile Luca, giovedì va benissimo.", text)
	assert.Equal(t, text, ws.Draft("e2"))

	snap := c.Snapshot()
	assert.Empty(t, snap.FeedbackHistory, "assist never grades")
	assert.Zero(t, snap.Score)
	assert.Contains(t, emailIDs(c.Store()), "e2")
}

func TestRequestAssist_FailureIsSilent(t *testing.T) {
	content := &fakeContent{}
	_, ws := inWorkspace(t, content)
	ws.SetDraft("e1", "la mia bozza")

	text, err := ws.RequestAssist(t.Context(), "e1")
	require.NoError(t, err)
	assert.Equal(t, AssistUnavailable, text)
	assert.Equal(t, "la mia bozza", ws.Draft("e1"), "failed assist keeps the draft")
}

func TestRequestAssist_ResolvedEmail(t *testing.T) {
	content := &fakeContent{evaluate: scoreOf(50), assist: func(context.Context, string) (string, error) {
		return "bozza", nil
	}}
	_, ws := inWorkspace(t, content)
	_, err := ws.SubmitEmailReply(t.Context(), "e1", "ok")
	require.NoError(t, err)

	_, err = ws.RequestAssist(t.Context(), "e1")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Empty(t, ws.Draft("e1"))
}

func TestEventsRecorded(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer s.Close()
	repo := s.EventRepo()

	content := &fakeContent{evaluate: scoreOf(35)}
	c, ws := inWorkspace(t, content, WithEventRepo(repo))
	_, err = ws.SubmitEmailReply(t.Context(), "e1", "ok")
	require.NoError(t, err)
	require.NoError(t, c.ExitWorkspace())

	events, err := repo.QuerySessionEvents(t.Context(), store.QueryOpts{SessionID: c.SessionID()})
	require.NoError(t, err)
	var actions []string
	for _, ev := range events {
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{store.ActionStudioSelected, store.ActionMonthStarted, store.ActionWorkspaceExited}, actions)
	assert.False(t, events[1].Fallback)
	assert.Equal(t, "day", events[1].ScenarioID)

	feedback, err := repo.QueryFeedback(t.Context(), store.QueryOpts{SessionID: c.SessionID()})
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, 35, feedback[0].Score)
	assert.Equal(t, 4, feedback[0].SessionScore)
	assert.Equal(t, "EMAIL_REPLY", feedback[0].TaskType)
	assert.Equal(t, string(scenario.StudioLegal), feedback[0].Studio)
}

func TestEventsRecorded_Fallback(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer s.Close()
	repo := s.EventRepo()

	c := atDashboard(t, &fakeContent{}, WithEventRepo(repo))
	_, err = c.StartMonth(t.Context(), 1)
	require.NoError(t, err)

	events, err := repo.QuerySessionEvents(t.Context(), store.QueryOpts{SessionID: c.SessionID()})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[1].Fallback)
	assert.Equal(t, "offline", events[1].Detail)
}
