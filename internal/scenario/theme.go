package scenario

// MonthTheme is the dashboard copy for one month of the career arc.
type MonthTheme struct {
	Title string
	Blurb string
}

var monthBlurbs = map[int]string{
	1:  "Learn to manage the agenda, filter the first emails and pick up the studio's tone of voice.",
	2:  "Communication volume grows. Learn to handle priorities and simple conflicts.",
	3:  "Focus on document handling and secure digital archiving.",
	6:  "Crisis management: unhappy clients and last-minute emergencies.",
	12: "Master scenario: run the whole studio while the owner is away.",
}

const defaultBlurb = "Consolidate your skills with mixed, medium-difficulty scenarios."

// ThemeForMonth returns the title and blurb shown on a month card.
func ThemeForMonth(month int) MonthTheme {
	var title string
	switch {
	case month <= 3:
		title = "Onboarding & Routine"
	case month <= 6:
		title = "Independent Management"
	case month <= 9:
		title = "Problem Solving"
	default:
		title = "Senior Responsibility"
	}
	blurb, ok := monthBlurbs[month]
	if !ok {
		blurb = defaultBlurb
	}
	return MonthTheme{Title: title, Blurb: blurb}
}
