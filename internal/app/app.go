// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/router"
	"github.com/abhisek/catprep/internal/screen"
	"github.com/abhisek/catprep/internal/screens/home"
	"github.com/abhisek/catprep/internal/screens/practice"
	"github.com/abhisek/catprep/internal/ui/layout"
)

// Options selects the starting point of the program.
type Options struct {
	// Skill, when set, opens straight into practice for that skill.
	Skill puzzle.SkillID

	// Difficulty, when set, overrides the difficulty policy.
	Difficulty puzzle.Difficulty
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// newAppModel creates the root model with the home screen at the bottom
// of the stack.
func newAppModel(deps practice.Deps, opts Options) (AppModel, error) {
	r := router.New(home.New(deps, opts.Difficulty))
	m := AppModel{router: r}
	if opts.Skill != "" {
		sk, err := puzzle.GetSkill(opts.Skill)
		if err != nil {
			return AppModel{}, err
		}
		m.init = r.Push(practice.New(deps, sk, opts.Difficulty))
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.DisposeAll()
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 {
				m.router.DisposeAll()
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
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

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}

	if hints == nil {
		if m.router.Depth() > 1 {
			hints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			hints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Q", Description: "Quit"},
			}
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(deps practice.Deps, opts Options) error {
	model, err := newAppModel(deps, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	final, err := p.Run()
	if fm, ok := final.(AppModel); ok {
		fm.router.DisposeAll()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
