package scenario

import (
	"slices"
	"strings"
)

// Calendar display window, in whole hours.
const (
	DayStartHour = 8
	DayEndHour   = 19
)

// SortedEvents returns the events ordered by start time. Events whose
// start does not parse sort last, in their original order.
func (s *DailyScenario) SortedEvents() []CalendarEvent {
	out := append([]CalendarEvent(nil), s.Events...)
	slices.SortStableFunc(out, func(a, b CalendarEvent) int {
		ta, okA := ParseClock(a.Start)
		tb, okB := ParseClock(b.Start)
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}

// Conflicts returns pairs of event ids whose time ranges overlap.
func (s *DailyScenario) Conflicts() [][2]string {
	var out [][2]string
	sorted := s.SortedEvents()
	for i := range sorted {
		end, ok := ParseClock(sorted[i].End)
		if !ok {
			continue
		}
		if _, ok := ParseClock(sorted[i].Start); !ok {
			continue
		}
		// Sorted by start, so a later event overlaps iff it starts before
		// this one ends.
		for j := i + 1; j < len(sorted); j++ {
			start, ok := ParseClock(sorted[j].Start)
			if !ok || !start.Before(end) {
				continue
			}
			out = append(out, [2]string{sorted[i].ID, sorted[j].ID})
		}
	}
	return out
}

// Urgent reports whether the email should carry the URGENT badge.
func (e Email) Urgent() bool {
	return e.Priority == PriorityHigh
}

// Snippet returns the first line of the body, cut to n runes.
func (e Email) Snippet(n int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(e.Body), "\n")
	r := []rune(line)
	if len(r) <= n {
		return line
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
