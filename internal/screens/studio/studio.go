package studio

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/scenario"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/ui/components"
	"github.com/abhisek/studiosim/internal/ui/layout"
	"github.com/abhisek/studiosim/internal/ui/theme"
)

type studioChosenMsg struct {
	Studio scenario.StudioType
}

// StudioScreen lets the player pick the studio they will work in.
type StudioScreen struct {
	ctrl             *sim.Controller
	dashboardFactory func() screen.Screen
	menu             components.Menu
	errMsg           string
}

var _ screen.Screen = (*StudioScreen)(nil)
var _ screen.KeyHintProvider = (*StudioScreen)(nil)

// New creates a StudioScreen. After a studio is chosen the screen replaces
// itself with the one built by dashboardFactory.
func New(ctrl *sim.Controller, dashboardFactory func() screen.Screen) *StudioScreen {
	items := make([]components.MenuItem, 0, len(scenario.AllStudios()))
	for _, st := range scenario.AllStudios() {
		items = append(items, components.MenuItem{
			Icon:   st.Icon(),
			Label:  st.Label(),
			Detail: st.Blurb(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return studioChosenMsg{Studio: st} }
			},
		})
	}
	return &StudioScreen{
		ctrl:             ctrl,
		dashboardFactory: dashboardFactory,
		menu:             components.NewMenu(items),
	}
}

func (s *StudioScreen) Init() tea.Cmd {
	return nil
}

func (s *StudioScreen) Title() string {
	return "Choose your studio"
}

func (s *StudioScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "1-4", Description: "Quick pick"},
	}
}

func (s *StudioScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studioChosenMsg:
		err := s.ctrl.SelectStudio(msg.Studio)
		if err != nil && !errors.Is(err, sim.ErrStudioAlreadySelected) {
			s.errMsg = err.Error()
			return s, nil
		}
		next := s.dashboardFactory()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudioScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Where will you work this year?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Twelve months as an assistant, one workday per month."))
	b.WriteString("\n\n")

	menu := theme.Card.Render(strings.TrimRight(s.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}
