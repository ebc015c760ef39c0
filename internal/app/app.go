package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiosim/internal/router"
	"github.com/abhisek/studiosim/internal/screen"
	"github.com/abhisek/studiosim/internal/screens/dashboard"
	"github.com/abhisek/studiosim/internal/screens/history"
	"github.com/abhisek/studiosim/internal/screens/studio"
	"github.com/abhisek/studiosim/internal/screens/welcome"
	"github.com/abhisek/studiosim/internal/sim"
	"github.com/abhisek/studiosim/internal/store"
	"github.com/abhisek/studiosim/internal/ui/layout"
)

// Options configures the interactive program.
type Options struct {
	// Controller drives the simulation. Required.
	Controller *sim.Controller

	// Events backs the history screen's earlier sessions. Optional.
	Events store.EventRepo

	// SkipSplash starts directly on the studio selector or dashboard.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *sim.Controller
	width  int
	height int
}

// newAppModel wires the screens together and picks the first one from the
// controller's phase.
func newAppModel(opts Options) AppModel {
	ctrl := opts.Controller

	var studioFactory, dashboardFactory func() screen.Screen
	historyFactory := func() screen.Screen {
		return history.New(ctrl, opts.Events)
	}
	dashboardFactory = func() screen.Screen {
		return dashboard.New(ctrl, dashboard.Factories{
			Studio:  studioFactory,
			History: historyFactory,
		})
	}
	studioFactory = func() screen.Screen {
		return studio.New(ctrl, dashboardFactory)
	}

	first := studioFactory
	if ctrl.Phase() != sim.PhaseSelectingStudio {
		first = dashboardFactory
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = first()
	} else {
		initial = welcome.New(first)
	}

	return AppModel{
		router: router.New(initial),
		ctrl:   ctrl,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) headerStatus() layout.HeaderStatus {
	snap := m.ctrl.Snapshot()
	if snap.Studio == "" {
		return layout.HeaderStatus{}
	}
	return layout.HeaderStatus{
		Studio: snap.Studio.Label(),
		Month:  snap.CurrentMonth,
		Score:  snap.Score,
	}
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: controller is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
