package scenario

// Priority ranks an email in the inbox.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// EventType classifies a calendar entry.
type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventCall     EventType = "call"
	EventPersonal EventType = "personal"
	EventOther    EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventMeeting, EventCall, EventPersonal, EventOther:
		return true
	}
	return false
}

// Email is one inbox item. ID is unique within its scenario.
type Email struct {
	ID       string   `json:"id" yaml:"id"`
	From     string   `json:"from" yaml:"from"`
	Subject  string   `json:"subject" yaml:"subject"`
	Body     string   `json:"body" yaml:"body"`
	IsRead   bool     `json:"isRead" yaml:"isRead"`
	Date     string   `json:"date" yaml:"date"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// CalendarEvent is one agenda entry. Start and End are "HH:MM".
type CalendarEvent struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Start       string    `json:"start" yaml:"start"`
	End         string    `json:"end" yaml:"end"`
	Type        EventType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// DailyScenario is one simulated workday. It is treated as immutable once
// built; ScenarioStore tracks resolution separately.
type DailyScenario struct {
	ID          string          `json:"id" yaml:"id"`
	Month       int             `json:"month" yaml:"month"`
	Studio      StudioType      `json:"studio,omitempty" yaml:"studio,omitempty"`
	DayTitle    string          `json:"dayTitle" yaml:"dayTitle"`
	Description string          `json:"description" yaml:"description"`
	Objective   string          `json:"objective" yaml:"objective"`
	Difficulty  int             `json:"difficulty" yaml:"difficulty"`
	Emails      []Email         `json:"emails" yaml:"emails"`
	Events      []CalendarEvent `json:"events" yaml:"events"`
}

// Email returns the email with the given id.
func (s *DailyScenario) Email(id string) (Email, bool) {
	for _, e := range s.Emails {
		if e.ID == id {
			return e, true
		}
	}
	return Email{}, false
}

// Clone returns a deep copy.
func (s *DailyScenario) Clone() *DailyScenario {
	if s == nil {
		return nil
	}
	c := *s
	c.Emails = append([]Email(nil), s.Emails...)
	c.Events = append([]CalendarEvent(nil), s.Events...)
	return &c
}
