package scenario

// FallbackID identifies the offline scenario. Every fallback instance shares
// it, along with the email and event ids, so the fixture is reproducible.
const (
	FallbackID      = "fallback-1"
	FallbackEmailID = "e1"
	FallbackEventID = "ev1"
)

// Fallback returns the fixed scenario used when no generated scenario is
// available. It always holds one welcome email and one briefing event,
// whatever the month or studio.
func Fallback(month int) *DailyScenario {
	return &DailyScenario{
		ID:          FallbackID,
		Month:       month,
		DayTitle:    "Giornata di prova (Offline Mode)",
		Description: "Scenario generato localmente per mancanza di connessione AI.",
		Objective:   "Familiarizza con l'interfaccia.",
		Difficulty:  1,
		Emails: []Email{
			{
				ID:       FallbackEmailID,
				From:     "Mario Rossi",
				Subject:  "Benvenuto",
				Body:     "Benvenuto nello studio. Rispondi a questa mail per provare.",
				Date:     "09:00",
				Priority: PriorityNormal,
			},
		},
		Events: []CalendarEvent{
			{ID: FallbackEventID, Title: "Briefing", Start: "09:00", End: "09:30", Type: EventMeeting},
		},
	}
}

// IsFallback reports whether s is the offline scenario.
func IsFallback(s *DailyScenario) bool {
	return s != nil && s.ID == FallbackID
}
