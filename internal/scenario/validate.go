package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidScenario is wrapped by every Validate failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// ValidationError lists every problem found in a scenario.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidScenario, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidScenario }

// Validate checks the invariants a scenario must hold before the simulation
// accepts it: month in range, at least one email, unique non-empty ids,
// enum fields in range and events with HH:MM times that end after they
// start.
func Validate(s *DailyScenario) error {
	if s == nil {
		return &ValidationError{Problems: []string{"scenario is nil"}}
	}

	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.Month < 1 || s.Month > 12 {
		addf("month %d out of range 1..12", s.Month)
	}
	if s.Studio != "" && !s.Studio.Valid() {
		addf("unknown studio %q", s.Studio)
	}
	if len(s.Emails) == 0 {
		addf("no emails")
	}

	seen := make(map[string]bool, len(s.Emails))
	for i, e := range s.Emails {
		switch {
		case strings.TrimSpace(e.ID) == "":
			addf("email %d has no id", i)
		case seen[e.ID]:
			addf("duplicate email id %q", e.ID)
		}
		seen[e.ID] = true
		if !e.Priority.Valid() {
			addf("email %q has invalid priority %q", e.ID, e.Priority)
		}
	}

	seen = make(map[string]bool, len(s.Events))
	for i, ev := range s.Events {
		switch {
		case strings.TrimSpace(ev.ID) == "":
			addf("event %d has no id", i)
		case seen[ev.ID]:
			addf("duplicate event id %q", ev.ID)
		}
		seen[ev.ID] = true
		if !ev.Type.Valid() {
			addf("event %q has invalid type %q", ev.ID, ev.Type)
		}
		start, okStart := ParseClock(ev.Start)
		end, okEnd := ParseClock(ev.End)
		switch {
		case !okStart:
			addf("event %q start %q is not HH:MM", ev.ID, ev.Start)
		case !okEnd:
			addf("event %q end %q is not HH:MM", ev.ID, ev.End)
		case !start.Before(end):
			addf("event %q ends at %s, not after its start %s", ev.ID, ev.End, ev.Start)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// clockPattern matches the "HH:MM" times ParseClock accepts.
const clockPattern = `^([01]?[0-9]|2[0-3]):[0-5][0-9]$`

// ParseClock parses a wall-clock "HH:MM" time. The date part of the result
// is meaningless; only compare results with each other.
func ParseClock(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
