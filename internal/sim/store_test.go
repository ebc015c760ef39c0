package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func emailIDs(s *ScenarioStore) []string {
	var ids []string
	for _, e := range s.UnresolvedEmails() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestScenarioStore_Empty(t *testing.T) {
	s := NewScenarioStore()
	assert.Empty(t, s.UnresolvedEmails())
	assert.Zero(t, s.ResolvedCount())
	assert.False(t, s.AllResolved(), "no scenario is not a finished scenario")
}

func TestScenarioStore_MarkResolved(t *testing.T) {
	s := NewScenarioStore()
	s.Reset(threeEmailDay("a", 1))
	assert.Equal(t, []string{"e1", "e2", "e3"}, emailIDs(s))

	s.MarkResolved("e2")
	assert.Equal(t, []string{"e1", "e3"}, emailIDs(s))
	assert.True(t, s.IsResolved("e2"))
	assert.Equal(t, 1, s.ResolvedCount())
}

func TestScenarioStore_MarkResolvedIdempotent(t *testing.T) {
	once := NewScenarioStore()
	once.Reset(threeEmailDay("a", 1))
	once.MarkResolved("e1")

	twice := NewScenarioStore()
	twice.Reset(threeEmailDay("a", 1))
	twice.MarkResolved("e1")
	twice.MarkResolved("e1")

	assert.Equal(t, emailIDs(once), emailIDs(twice))
	assert.Equal(t, once.ResolvedCount(), twice.ResolvedCount())
	assert.Equal(t, once.AllResolved(), twice.AllResolved())
}

func TestScenarioStore_ResetClearsResolution(t *testing.T) {
	s := NewScenarioStore()
	s.Reset(threeEmailDay("A", 1))
	s.MarkResolved("e1")

	s.Reset(threeEmailDay("B", 1))
	assert.Equal(t, []string{"e1", "e2", "e3"}, emailIDs(s))
	assert.False(t, s.IsResolved("e1"))
}

func TestScenarioStore_AllResolved(t *testing.T) {
	s := NewScenarioStore()
	s.Reset(threeEmailDay("a", 1))
	for _, id := range []string{"e1", "e2", "e3"} {
		assert.False(t, s.AllResolved())
		s.MarkResolved(id)
	}
	assert.True(t, s.AllResolved())
	assert.Empty(t, s.UnresolvedEmails())
}

func TestScenarioStore_UnknownIDsDoNotCount(t *testing.T) {
	s := NewScenarioStore()
	s.Reset(threeEmailDay("a", 1))
	s.MarkResolved("e9")
	assert.Zero(t, s.ResolvedCount())
	assert.Len(t, s.UnresolvedEmails(), 3)
}
