package sim

import (
	"maps"

	"github.com/abhisek/studiosim/internal/scenario"
)

// ScenarioStore tracks which emails of the current scenario are resolved.
// Resolution never carries over from one scenario instance to the next.
// It is not safe for concurrent use; the Controller serializes access.
type ScenarioStore struct {
	scenario *scenario.DailyScenario
	resolved map[string]bool
}

// NewScenarioStore returns an empty store.
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{resolved: make(map[string]bool)}
}

// Reset binds the store to sc and clears all resolution.
func (s *ScenarioStore) Reset(sc *scenario.DailyScenario) {
	s.scenario = sc
	s.resolved = make(map[string]bool)
}

// MarkResolved records emailID as handled. Marking twice is a no-op.
func (s *ScenarioStore) MarkResolved(emailID string) {
	s.resolved[emailID] = true
}

// IsResolved reports whether emailID has been handled.
func (s *ScenarioStore) IsResolved(emailID string) bool {
	return s.resolved[emailID]
}

// UnresolvedEmails returns the scenario's emails that still need handling,
// in scenario order.
func (s *ScenarioStore) UnresolvedEmails() []scenario.Email {
	if s.scenario == nil {
		return nil
	}
	out := make([]scenario.Email, 0, len(s.scenario.Emails))
	for _, e := range s.scenario.Emails {
		if !s.resolved[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// ResolvedCount returns how many of the scenario's emails are resolved.
func (s *ScenarioStore) ResolvedCount() int {
	if s.scenario == nil {
		return 0
	}
	n := 0
	for _, e := range s.scenario.Emails {
		if s.resolved[e.ID] {
			n++
		}
	}
	return n
}

// AllResolved reports whether every email of the scenario is handled.
func (s *ScenarioStore) AllResolved() bool {
	return s.scenario != nil && s.ResolvedCount() == len(s.scenario.Emails)
}

func (s *ScenarioStore) clone() *ScenarioStore {
	return &ScenarioStore{scenario: s.scenario, resolved: maps.Clone(s.resolved)}
}
