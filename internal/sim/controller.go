package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/store"
)

// Option configures a Controller.
type Option func(*Controller)

// WithConfig overrides the default Config.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithEventRepo records session transitions and graded tasks in repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(c *Controller) { c.rec.events = repo }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.rec.logger = logger
		}
	}
}

// Controller owns the session state machine: studio selection, the month
// dashboard, scenario loading and the workspace. It is safe for concurrent
// use; provider calls run without holding the lock.
type Controller struct {
	mu        sync.Mutex
	state     *State
	phase     Phase
	store     *ScenarioStore
	content   ContentProvider
	cfg       Config
	rec       recorder
	sessionID string

	// epoch changes on Reset so an in-flight StartMonth can tell that its
	// result is stale.
	epoch int

	// instance changes whenever the workspace gets or loses a scenario.
	// Workspaces bind to it rather than to the scenario id, which repeats
	// across fallback and pack days.
	instance uint64
}

// NewController creates a Controller over state. A nil state starts a
// fresh session. The initial phase follows from state: no studio means
// studio selection, a scenario means the workspace, otherwise the
// dashboard.
func NewController(state *State, content ContentProvider, opts ...Option) *Controller {
	if state == nil {
		state = NewState()
	}
	if state.CurrentMonth < FirstMonth || state.CurrentMonth > LastMonth {
		state.CurrentMonth = FirstMonth
	}
	c := &Controller{
		state:     state,
		store:     NewScenarioStore(),
		content:   content,
		cfg:       DefaultConfig(),
		rec:       recorder{logger: slog.New(slog.DiscardHandler)},
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case state.Studio == "":
		state.Scenario = nil
		c.phase = PhaseSelectingStudio
	case state.Scenario != nil:
		c.store.Reset(state.Scenario)
		c.instance++
		c.phase = PhaseWorkspace
	default:
		c.phase = PhaseDashboard
	}
	return c
}

// SessionID identifies the current session in the event log.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Snapshot returns a deep copy of the state.
func (c *Controller) Snapshot() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Scenario returns a copy of the current scenario, or nil on the dashboard.
func (c *Controller) Scenario() *scenario.DailyScenario {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Scenario.Clone()
}

// Store returns a read-only copy of the scenario store.
func (c *Controller) Store() *ScenarioStore {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.clone()
}

// MonthStatus returns how month m is shown on the dashboard.
func (c *Controller) MonthStatus(m int) MonthStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case m > c.state.CurrentMonth:
		return MonthLocked
	case m == c.state.CurrentMonth:
		return MonthCurrent
	}
	return MonthCompleted
}

// MonthTheme returns the dashboard copy for month m.
func (c *Controller) MonthTheme(m int) scenario.MonthTheme {
	return scenario.ThemeForMonth(m)
}

// SelectStudio picks the studio for the session and moves to the
// dashboard. The studio cannot be changed afterwards except by Reset.
func (c *Controller) SelectStudio(studio scenario.StudioType) error {
	c.mu.Lock()
	if c.state.Studio != "" {
		c.mu.Unlock()
		return ErrStudioAlreadySelected
	}
	if c.phase != PhaseSelectingStudio {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	if !studio.Valid() {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidStudio, studio)
	}
	c.state.Studio = studio
	c.phase = PhaseDashboard
	ev := c.sessionEvent(store.ActionStudioSelected)
	c.mu.Unlock()

	c.rec.session(ev)
	return nil
}

// StartMonth loads a scenario for month and enters the workspace. Any
// month up to the current one may be played. Content failures are never
// returned: the offline scenario is substituted and the cause logged.
func (c *Controller) StartMonth(ctx context.Context, month int) (*scenario.DailyScenario, error) {
	c.mu.Lock()
	if c.phase != PhaseDashboard {
		c.mu.Unlock()
		return nil, ErrWrongPhase
	}
	if month < FirstMonth || month > LastMonth {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if month > c.state.CurrentMonth {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d (current month is %d)", ErrMonthLocked, month, c.state.CurrentMonth)
	}
	c.phase = PhaseLoading
	studio := c.state.Studio
	epoch := c.epoch
	c.mu.Unlock()

	sc, err := c.generate(ctx, month, studio)
	if err != nil {
		c.rec.logger.Warn("scenario generation failed, using offline scenario",
			"month", month, "studio", studio, "error", err)
		sc = scenario.Fallback(month)
		sc.Studio = studio
	}

	c.mu.Lock()
	if c.epoch != epoch || c.phase != PhaseLoading {
		c.mu.Unlock()
		return nil, ErrWrongPhase
	}
	c.state.Scenario = sc
	c.store.Reset(sc)
	c.instance++
	c.phase = PhaseWorkspace
	ev := c.sessionEvent(store.ActionMonthStarted)
	ev.Fallback = scenario.IsFallback(sc)
	if err != nil {
		ev.Detail = err.Error()
	}
	c.mu.Unlock()

	c.rec.session(ev)
	return sc.Clone(), nil
}

// generate calls the content provider under the call timeout and checks
// that what came back is a complete scenario for the requested month.
func (c *Controller) generate(ctx context.Context, month int, studio scenario.StudioType) (*scenario.DailyScenario, error) {
	if c.content == nil {
		return nil, fmt.Errorf("no content provider")
	}
	ctx, cancel := withTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	sc, err := c.content.GenerateScenario(ctx, month, studio)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("provider returned no scenario")
	}
	sc = sc.Clone()
	if sc.Month != month {
		return nil, fmt.Errorf("provider returned month %d, want %d", sc.Month, month)
	}
	if sc.Studio == "" {
		sc.Studio = studio
	}
	if err := scenario.Validate(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// RecordScore folds a task score into the session score and returns the
// new session score.
func (c *Controller) RecordScore(taskScore int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Score = AddScore(c.state.Score, taskScore)
	return c.state.Score
}

// ExitWorkspace abandons the current scenario and returns to the
// dashboard. It never advances the month.
func (c *Controller) ExitWorkspace() error {
	c.mu.Lock()
	if c.phase != PhaseWorkspace {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	ev := c.sessionEvent(store.ActionWorkspaceExited)
	c.leaveWorkspace()
	c.mu.Unlock()

	c.rec.session(ev)
	return nil
}

// CompleteScenario closes a scenario whose emails are all resolved. If it
// was the current month's scenario, the next month unlocks. It reports
// whether the month advanced.
func (c *Controller) CompleteScenario() (bool, error) {
	c.mu.Lock()
	if c.phase != PhaseWorkspace {
		c.mu.Unlock()
		return false, ErrWrongPhase
	}
	if !c.store.AllResolved() {
		c.mu.Unlock()
		return false, ErrTasksPending
	}

	sc := c.state.Scenario
	if key := completionKey(sc); !c.state.completed(key) {
		c.state.CompletedScenarios = append(c.state.CompletedScenarios, key)
	}
	advanced := false
	if sc.Month == c.state.CurrentMonth && c.state.CurrentMonth < LastMonth {
		c.state.CurrentMonth++
		advanced = true
	}
	ev := c.sessionEvent(store.ActionScenarioCompleted)
	c.leaveWorkspace()
	c.mu.Unlock()

	c.rec.session(ev)
	return advanced, nil
}

// Reset discards the session and starts a new one at studio selection.
func (c *Controller) Reset() {
	c.mu.Lock()
	ev := c.sessionEvent(store.ActionSessionReset)
	*c.state = *NewState()
	c.store.Reset(nil)
	c.phase = PhaseSelectingStudio
	c.instance++
	c.epoch++
	c.sessionID = uuid.NewString()
	c.mu.Unlock()

	c.rec.session(ev)
}

func (c *Controller) leaveWorkspace() {
	c.state.Scenario = nil
	c.store.Reset(nil)
	c.instance++
	c.phase = PhaseDashboard
}

// sessionEvent describes the current state for the event log. Callers
// hold c.mu.
func (c *Controller) sessionEvent(action string) store.SessionEventData {
	ev := store.SessionEventData{
		SessionID: c.sessionID,
		Action:    action,
		Studio:    string(c.state.Studio),
		Month:     c.state.CurrentMonth,
		Score:     c.state.Score,
	}
	if sc := c.state.Scenario; sc != nil {
		ev.ScenarioID = sc.ID
		ev.Month = sc.Month
	}
	return ev
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
