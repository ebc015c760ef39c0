package scenario

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert screenwriter for corporate training simulators.
You write realistic workdays for a training course for secretaries and studio assistants.

Rules:
- Write 3 to 5 realistic emails. Mix routine mail with urgent requests, spam and angry clients.
- Write 2 or 3 calendar events for today. They may overlap to create scheduling conflicts.
- Give the day one main objective.
- Senders must feel real: plausible names, signatures and tone.
- Times are HH:MM between 08:00 and 19:00, and every event ends after it starts.
- Email ids are e1, e2, ... and event ids are ev1, ev2, ...
- Write all content in the requested language.`

// buildUserMessage describes the month, studio and language for one day.
func buildUserMessage(month int, studio StudioType, cfg GeneratorConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Work month: %d (1 = novice, 12 = expert)\n", month)
	fmt.Fprintf(&b, "Studio type: %s\n", studio.Label())
	fmt.Fprintf(&b, "Language: %s\n", cfg.Language)
	fmt.Fprintf(&b, "Career stage: %s\n", ThemeForMonth(month).Title)

	if month >= cfg.SeniorFromMonth {
		b.WriteString("\nThis is a late month. Include complex situations such as clients threatening legal action or imminent tax deadlines.\n")
	}

	return b.String()
}
